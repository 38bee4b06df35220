package elgamal

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/numtheory"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

var (
	one = big.NewInt(1)
)

// Fixed 256-bit safe prime group used when no parameters are configured.
const (
	DefaultPrimeHex     = "f3760a5583d3509b3f72b16e3c892129fef350406f88c268f503e877e043514f"
	DefaultGeneratorHex = "1a2c6b6fb9971c4a993069c76258ee18ba80f778fd4d7bc07186c70e73b93004"
)

// Params defines the order (P-1)/2 subgroup of Z*_P generated by G.
type Params struct {
	P *big.Int // safe prime
	G *big.Int // generator of the order (P-1)/2 subgroup
}

// DefaultParams returns the fixed safe prime group.
func DefaultParams() *Params {
	p, _ := new(big.Int).SetString(DefaultPrimeHex, 16)
	g, _ := new(big.Int).SetString(DefaultGeneratorHex, 16)
	return &Params{P: p, G: g}
}

// ParseParams builds Params from hex strings.
func ParseParams(primeHex, generatorHex string) (*Params, error) {
	p, ok := new(big.Int).SetString(primeHex, 16)
	if !ok {
		return nil, chainkeys.NewDecodeError("elgamal prime", primeHex, errors.New("not hex"))
	}
	g, ok := new(big.Int).SetString(generatorHex, 16)
	if !ok {
		return nil, chainkeys.NewDecodeError("elgamal generator", generatorHex, errors.New("not hex"))
	}
	return &Params{P: p, G: g}, nil
}

// GenerateParams creates a fresh safe prime of the given bit size and
// searches for a generator of its prime order subgroup.
func GenerateParams(random io.Reader, bits, rounds, generatorAttempts int) (*Params, error) {
	p, err := numtheory.GenerateSafePrime(random, bits, rounds)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal: generate prime")
	}
	g, err := numtheory.GeneratorFromPrime(random, generatorAttempts, p)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal: find generator")
	}
	return &Params{P: p, G: g}, nil
}

// Order returns (P-1)/2.
func (p *Params) Order() *big.Int {
	return new(big.Int).Rsh(p.P, 1)
}

// Validate checks that P is a safe prime and that G generates the order
// (P-1)/2 subgroup.
func (p *Params) Validate(rounds int) error {
	if p.P == nil || p.G == nil {
		return errors.New("elgamal: incomplete parameters")
	}
	if !numtheory.IsSafePrime(p.P, rounds) {
		return errors.Errorf("elgamal: %x is not a safe prime", p.P)
	}
	if p.G.Cmp(one) <= 0 || p.G.Cmp(p.P) >= 0 {
		return errors.New("elgamal: generator out of range")
	}
	if new(big.Int).Exp(p.G, p.Order(), p.P).Cmp(one) != 0 {
		return errors.New("elgamal: generator does not have order (p-1)/2")
	}
	return nil
}

// Equal reports whether both parameter sets describe the same group.
func (p *Params) Equal(other *Params) bool {
	return p.P.Cmp(other.P) == 0 && p.G.Cmp(other.G) == 0
}

// PublicKey represents an ElGamal public key y = g^x mod p.
type PublicKey struct {
	Params
	Y *big.Int
}

// PrivateKey represents an ElGamal private key x.
type PrivateKey struct {
	PublicKey
	X *big.Int
}

// Ciphertext is the pair (a, b) = (g^k, y^k * m).
type Ciphertext struct {
	A *big.Int
	B *big.Int
}

// GenerateKey draws a private exponent in [2, p-1) and derives the public
// value.
func GenerateKey(random io.Reader, params *Params) (*PrivateKey, error) {
	x, err := numtheory.RandomNumber(random, params.P)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal: draw private exponent")
	}
	return NewPrivateKey(params, x)
}

// NewPrivateKey imports a private exponent under params.
func NewPrivateKey(params *Params, x *big.Int) (*PrivateKey, error) {
	if x == nil || x.Sign() <= 0 {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "elgamal: private exponent must be positive")
	}
	y := new(big.Int).Exp(params.G, x, params.P)
	return &PrivateKey{
		PublicKey: PublicKey{
			Params: *params,
			Y:      y,
		},
		X: new(big.Int).Set(x),
	}, nil
}

// NewPublicKey imports a public value y under params.
func NewPublicKey(params *Params, y *big.Int) (*PublicKey, error) {
	if y == nil || y.Cmp(one) <= 0 || y.Cmp(params.P) >= 0 {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "elgamal: public value out of range")
	}
	return &PublicKey{Params: *params, Y: new(big.Int).Set(y)}, nil
}

// Equal reports whether two public keys share parameters and public value.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.Params.Equal(&other.Params) && pk.Y.Cmp(other.Y) == 0
}

// Encrypt encrypts m, which must be in [1, p), with a fresh random k.
func (pk *PublicKey) Encrypt(random io.Reader, m *big.Int) (*Ciphertext, error) {
	k, err := numtheory.RandomNumber(random, pk.P)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal: draw nonce")
	}
	return pk.EncryptWithNonce(m, k)
}

// EncryptWithNonce encrypts m using a caller supplied nonce k.
func (pk *PublicKey) EncryptWithNonce(m, k *big.Int) (*Ciphertext, error) {
	if m.Sign() <= 0 || m.Cmp(pk.P) >= 0 {
		return nil, errors.Wrap(chainkeys.ErrMessageRange, "elgamal: message m must be in range [1, p)")
	}

	// a = g^k mod p
	a := new(big.Int).Exp(pk.G, k, pk.P)

	// b = y^k * m mod p
	b := new(big.Int).Exp(pk.Y, k, pk.P)
	b.Mul(b, m)
	b.Mod(b, pk.P)

	return &Ciphertext{A: a, B: b}, nil
}

// EncryptAdditive encrypts g^m so that ciphertext products add plaintexts.
// m must be in [0, (p-1)/2).
func (pk *PublicKey) EncryptAdditive(random io.Reader, m *big.Int) (*Ciphertext, error) {
	if m.Sign() < 0 || m.Cmp(pk.Order()) >= 0 {
		return nil, errors.Wrap(chainkeys.ErrMessageRange, "elgamal: additive message must be in range [0, (p-1)/2)")
	}
	gm := new(big.Int).Exp(pk.G, m, pk.P)
	return pk.Encrypt(random, gm)
}

// EncryptBytes encrypts a short payload interpreted as a big-endian integer.
// Leading zero bytes are not preserved.
func (pk *PublicKey) EncryptBytes(random io.Reader, data []byte) (*Ciphertext, error) {
	return pk.Encrypt(random, new(big.Int).SetBytes(data))
}

// Mul combines two ciphertexts component-wise. Under Encrypt the result
// decrypts to m1*m2 mod p; under EncryptAdditive to m1+m2.
func (pk *PublicKey) Mul(c1, c2 *Ciphertext) *Ciphertext {
	a := new(big.Int).Mul(c1.A, c2.A)
	a.Mod(a, pk.P)
	b := new(big.Int).Mul(c1.B, c2.B)
	b.Mod(b, pk.P)
	return &Ciphertext{A: a, B: b}
}

// ValidateCiphertext checks that both components are in [1, p).
func (pk *PublicKey) ValidateCiphertext(c *Ciphertext) error {
	if c == nil || c.A == nil || c.B == nil {
		return errors.New("elgamal: incomplete ciphertext")
	}
	for _, v := range []*big.Int{c.A, c.B} {
		if v.Sign() <= 0 || v.Cmp(pk.P) >= 0 {
			return errors.New("elgamal: ciphertext out of range")
		}
	}
	return nil
}

// Decrypt recovers m = a^-x * b mod p.
func (priv *PrivateKey) Decrypt(c *Ciphertext) (*big.Int, error) {
	if err := priv.ValidateCiphertext(c); err != nil {
		return nil, err
	}
	aInv, err := numtheory.ModInverse(c.A, priv.P)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal: invert a")
	}
	m := aInv.Exp(aInv, priv.X, priv.P)
	m.Mul(m, c.B)
	m.Mod(m, priv.P)
	return m, nil
}

// DecryptBytes decrypts a ciphertext produced by EncryptBytes.
func (priv *PrivateKey) DecryptBytes(c *Ciphertext) ([]byte, error) {
	m, err := priv.Decrypt(c)
	if err != nil {
		return nil, err
	}
	return m.Bytes(), nil
}

// DecryptAdditive recovers m from an EncryptAdditive ciphertext by solving
// the discrete log of g^m with bsgs. It fails with chainkeys.ErrNoSolution
// when m exceeds the solver's bound.
func (priv *PrivateKey) DecryptAdditive(c *Ciphertext, bsgs *numtheory.BabyStepGiantStep) (*big.Int, error) {
	gm, err := priv.Decrypt(c)
	if err != nil {
		return nil, err
	}
	m, err := bsgs.Solve(gm)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal: solve discrete log")
	}
	return m, nil
}
