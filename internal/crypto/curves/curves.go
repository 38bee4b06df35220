package curves

import (
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// CoordinateSize is the fixed width of a serialized field element.
const CoordinateSize = 32

var one = big.NewInt(1)

// Curve defines the elliptic curve operations needed by the key, ECDH and
// EC-ElGamal layers. Points are affine big.Int pairs; the point at infinity
// is (0, 0).
type Curve interface {
	// Params returns the curve parameters (P, N, B, Gx, Gy).
	Params() *elliptic.CurveParams

	// NewScalar draws a uniform scalar in [1, N-1] from random.
	NewScalar(random io.Reader) (*big.Int, error)

	// ScalarBaseMult computes k * G
	ScalarBaseMult(k *big.Int) (*big.Int, *big.Int)

	// ScalarMult computes k * P
	ScalarMult(Px, Py, k *big.Int) (*big.Int, *big.Int)

	// Add combines two points
	Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int)

	// Sub computes P1 - P2
	Sub(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int)

	// Neg returns -P
	Neg(x, y *big.Int) (*big.Int, *big.Int)

	// IsOnCurve reports whether (x, y) is a valid, non-identity point.
	IsOnCurve(x, y *big.Int) bool
}

type Secp256k1 struct{}

func (c *Secp256k1) Params() *elliptic.CurveParams {
	return secp256k1.S256().Params()
}

func (c *Secp256k1) NewScalar(random io.Reader) (*big.Int, error) {
	if random == nil {
		return nil, errors.New("curves: nil random source")
	}
	params := c.Params()
	// Uniform in [0, N-2], shifted to [1, N-1].
	max := new(big.Int).Sub(params.N, one)
	k, err := rand.Int(random, max)
	if err != nil {
		return nil, errors.Wrap(err, "curves: draw scalar")
	}
	return k.Add(k, one), nil
}

func (c *Secp256k1) ScalarBaseMult(k *big.Int) (*big.Int, *big.Int) {
	return secp256k1.S256().ScalarBaseMult(reduce(k).Bytes())
}

func (c *Secp256k1) ScalarMult(Px, Py, k *big.Int) (*big.Int, *big.Int) {
	return secp256k1.S256().ScalarMult(Px, Py, reduce(k).Bytes())
}

func (c *Secp256k1) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	return secp256k1.S256().Add(x1, y1, x2, y2)
}

func (c *Secp256k1) Neg(x, y *big.Int) (*big.Int, *big.Int) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	p := c.Params().P
	ny := new(big.Int).Sub(p, y)
	ny.Mod(ny, p)
	return new(big.Int).Set(x), ny
}

func (c *Secp256k1) Sub(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	nx, ny := c.Neg(x2, y2)
	return c.Add(x1, y1, nx, ny)
}

func (c *Secp256k1) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil || (x.Sign() == 0 && y.Sign() == 0) {
		return false
	}
	return secp256k1.S256().IsOnCurve(x, y)
}

// NewSecp256k1 returns a new instance of the Secp256k1 curve wrapper
func NewSecp256k1() Curve {
	return &Secp256k1{}
}

// CoordinateBytes serializes a field element as a fixed-width big-endian
// buffer. big.Int serialization is host independent, so no byte swapping is
// needed on big-endian machines.
func CoordinateBytes(v *big.Int) []byte {
	return v.FillBytes(make([]byte, CoordinateSize))
}

// reduce maps k into [0, N).
func reduce(k *big.Int) *big.Int {
	n := secp256k1.S256().Params().N
	if k.Sign() >= 0 && k.Cmp(n) < 0 {
		return k
	}
	return new(big.Int).Mod(k, n)
}
