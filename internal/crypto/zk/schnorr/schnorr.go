package schnorr

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/curves"
	"github.com/smallyu/go-chainkeys/internal/crypto/hashing"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// ProofSize is the serialized length of a Proof: R.X || R.Y || S.
const ProofSize = 3 * curves.CoordinateSize

var curve = curves.NewSecp256k1()

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
// Proves knowledge of x such that X = x * G.
type Proof struct {
	Rx, Ry *big.Int // Commitment R = k * G
	S      *big.Int // Response s = k + e * x
}

// Prove generates a proof for the secret x with public point (Xx, Xy).
// context is hashed into the challenge so a proof cannot be replayed in a
// different exchange.
func Prove(random io.Reader, x, Xx, Xy *big.Int, context []byte) (*Proof, error) {
	if x == nil || Xx == nil || Xy == nil {
		return nil, errors.New("schnorr: inputs cannot be nil")
	}
	n := curve.Params().N

	k, err := curve.NewScalar(random)
	if err != nil {
		return nil, errors.Wrap(err, "schnorr: draw nonce")
	}
	rx, ry := curve.ScalarBaseMult(k)

	e := challenge(context, Xx, Xy, rx, ry)

	s := new(big.Int).Mul(e, x)
	s.Add(s, k)
	s.Mod(s, n)

	return &Proof{Rx: rx, Ry: ry, S: s}, nil
}

// Verify checks s*G == R + e*X.
func (p *Proof) Verify(Xx, Xy *big.Int, context []byte) bool {
	if p == nil || p.Rx == nil || p.Ry == nil || p.S == nil {
		return false
	}
	if !curve.IsOnCurve(Xx, Xy) || !curve.IsOnCurve(p.Rx, p.Ry) {
		return false
	}
	if p.S.Sign() < 0 || p.S.Cmp(curve.Params().N) >= 0 {
		return false
	}

	e := challenge(context, Xx, Xy, p.Rx, p.Ry)

	lx, ly := curve.ScalarBaseMult(p.S)
	ex, ey := curve.ScalarMult(Xx, Xy, e)
	rx, ry := curve.Add(p.Rx, p.Ry, ex, ey)

	return lx.Cmp(rx) == 0 && ly.Cmp(ry) == 0
}

// Bytes serializes the proof as fixed-width big-endian fields.
func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, ProofSize)
	out = append(out, curves.CoordinateBytes(p.Rx)...)
	out = append(out, curves.CoordinateBytes(p.Ry)...)
	return append(out, curves.CoordinateBytes(p.S)...)
}

// ParseProof reverses Bytes. It does not check the point; Verify does.
func ParseProof(b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "schnorr: proof is %d bytes, want %d", len(b), ProofSize)
	}
	w := curves.CoordinateSize
	return &Proof{
		Rx: new(big.Int).SetBytes(b[:w]),
		Ry: new(big.Int).SetBytes(b[w : 2*w]),
		S:  new(big.Int).SetBytes(b[2*w:]),
	}, nil
}

// challenge computes H(context, X, R) mod n
func challenge(context []byte, Xx, Xy, Rx, Ry *big.Int) *big.Int {
	h := hashing.SHA256(
		context,
		curves.CoordinateBytes(Xx),
		curves.CoordinateBytes(Xy),
		curves.CoordinateBytes(Rx),
		curves.CoordinateBytes(Ry),
	)
	e := new(big.Int).SetBytes(h)
	return e.Mod(e, curve.Params().N)
}
