// Package ecelgamal implements ElGamal over secp256k1 points. Integers are
// mapped to points by trial encoding of the x coordinate.
//
// Ciphertexts are not combined homomorphically: the sum of two encoded
// points does not in general decode back to the sum of the integers.
package ecelgamal

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/curves"
	"github.com/smallyu/go-chainkeys/internal/crypto/numtheory"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// EncodingBase is the multiplier applied to a message before the trial
// offset is added. It also bounds the number of offsets tried.
const EncodingBase = 256

var (
	curve = curves.NewSecp256k1()
	base  = big.NewInt(EncodingBase)
	seven = big.NewInt(7)
)

// Point is an affine secp256k1 point.
type Point struct {
	X, Y *big.Int
}

// MaxMessage returns the largest integer Encode accepts.
func MaxMessage() *big.Int {
	// 256*m + 255 < p
	m := new(big.Int).Sub(curve.Params().P, big.NewInt(EncodingBase))
	return m.Div(m, base)
}

// Encode maps m onto a curve point with x = 256*m + i for the first offset
// i in [0, 256) where x^3 + 7 is a square with a non-zero root.
func Encode(m *big.Int) (*Point, error) {
	if m.Sign() < 0 || m.Cmp(MaxMessage()) > 0 {
		return nil, errors.Wrap(chainkeys.ErrMessageRange, "ecelgamal: message does not fit the encoding")
	}
	p := curve.Params().P
	x := new(big.Int).Mul(m, base)
	rhs := new(big.Int)
	for i := 0; i < EncodingBase; i++ {
		// rhs = x^3 + 7 mod p
		rhs.Exp(x, big.NewInt(3), p)
		rhs.Add(rhs, seven)
		rhs.Mod(rhs, p)

		if y, ok := numtheory.SqrtMod(rhs, p); ok && y.Sign() > 0 {
			return &Point{X: new(big.Int).Set(x), Y: y}, nil
		}
		x.Add(x, big.NewInt(1))
	}
	return nil, errors.Wrapf(chainkeys.ErrSearchExhausted, "ecelgamal: no point for message %s", m)
}

// UnMap recovers the encoded integer, X / 256.
func (pt *Point) UnMap() *big.Int {
	return new(big.Int).Div(pt.X, base)
}

// Equal reports whether both points have the same coordinates.
func (pt *Point) Equal(other *Point) bool {
	return pt.X.Cmp(other.X) == 0 && pt.Y.Cmp(other.Y) == 0
}

// PublicKey is the point Q = d*G.
type PublicKey struct {
	Point
}

// PrivateKey holds the scalar d.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

// Ciphertext is the pair (C1, C2) = (k*G, M + k*Q).
type Ciphertext struct {
	C1 *Point
	C2 *Point
}

// GenerateKey draws a fresh private scalar.
func GenerateKey(random io.Reader) (*PrivateKey, error) {
	d, err := curve.NewScalar(random)
	if err != nil {
		return nil, errors.Wrap(err, "ecelgamal: draw private scalar")
	}
	return NewPrivateKey(d)
}

// NewPrivateKey imports a scalar in [1, N).
func NewPrivateKey(d *big.Int) (*PrivateKey, error) {
	if d.Sign() <= 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "ecelgamal: scalar out of range")
	}
	x, y := curve.ScalarBaseMult(d)
	return &PrivateKey{
		PublicKey: PublicKey{Point{X: x, Y: y}},
		D:         new(big.Int).Set(d),
	}, nil
}

// Encrypt encrypts the point m with a fresh nonce.
func (pk *PublicKey) Encrypt(random io.Reader, m *Point) (*Ciphertext, error) {
	if !curve.IsOnCurve(m.X, m.Y) {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "ecelgamal: message point not on curve")
	}
	k, err := curve.NewScalar(random)
	if err != nil {
		return nil, errors.Wrap(err, "ecelgamal: draw nonce")
	}
	c1x, c1y := curve.ScalarBaseMult(k)
	sx, sy := curve.ScalarMult(pk.X, pk.Y, k)
	c2x, c2y := curve.Add(m.X, m.Y, sx, sy)
	return &Ciphertext{
		C1: &Point{X: c1x, Y: c1y},
		C2: &Point{X: c2x, Y: c2y},
	}, nil
}

// EncryptMessage encodes m and encrypts the resulting point.
func (pk *PublicKey) EncryptMessage(random io.Reader, m *big.Int) (*Ciphertext, error) {
	pt, err := Encode(m)
	if err != nil {
		return nil, err
	}
	return pk.Encrypt(random, pt)
}

// Decrypt recovers M = C2 - d*C1.
func (priv *PrivateKey) Decrypt(c *Ciphertext) (*Point, error) {
	if c == nil || c.C1 == nil || c.C2 == nil {
		return nil, errors.New("ecelgamal: incomplete ciphertext")
	}
	if !curve.IsOnCurve(c.C1.X, c.C1.Y) || !curve.IsOnCurve(c.C2.X, c.C2.Y) {
		return nil, errors.New("ecelgamal: ciphertext point not on curve")
	}
	sx, sy := curve.ScalarMult(c.C1.X, c.C1.Y, priv.D)
	mx, my := curve.Sub(c.C2.X, c.C2.Y, sx, sy)
	return &Point{X: mx, Y: my}, nil
}

// DecryptMessage decrypts and unmaps an EncryptMessage ciphertext.
func (priv *PrivateKey) DecryptMessage(c *Ciphertext) (*big.Int, error) {
	pt, err := priv.Decrypt(c)
	if err != nil {
		return nil, err
	}
	return pt.UnMap(), nil
}
