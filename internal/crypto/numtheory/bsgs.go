package numtheory

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// DefaultBound is the default discrete log search space, 2^32.
const DefaultBound uint64 = 1 << 32

// BabyStepGiantStep solves g^x = target (mod p) for x below a fixed bound.
// The table is built once and only read afterwards, so a single instance may
// be shared by concurrent decryptions.
type BabyStepGiantStep struct {
	p     *big.Int
	g     *big.Int
	step  uint64
	gnInv *big.Int // (g^step)^-1 mod p
	table map[string]uint64
}

// NewBabyStepGiantStep builds a solver covering DefaultBound.
func NewBabyStepGiantStep(p, g *big.Int) (*BabyStepGiantStep, error) {
	return NewBabyStepGiantStepWithBound(p, g, DefaultBound)
}

// NewBabyStepGiantStepWithBound builds a solver for exponents up to bound.
// The table holds ceil(sqrt(bound))+1 entries.
func NewBabyStepGiantStepWithBound(p, g *big.Int, bound uint64) (*BabyStepGiantStep, error) {
	if p == nil || g == nil || p.Cmp(three) < 0 {
		return nil, errors.New("numtheory: invalid bsgs group")
	}
	if bound == 0 {
		return nil, errors.New("numtheory: bsgs bound must be positive")
	}
	step := uint64(math.Ceil(math.Sqrt(float64(bound)))) + 1

	table := make(map[string]uint64, step)
	cur := big.NewInt(1)
	for i := uint64(0); i < step; i++ {
		key := string(cur.Bytes())
		// Keep the smallest exponent if g has small order.
		if _, ok := table[key]; !ok {
			table[key] = i
		}
		cur.Mul(cur, g).Mod(cur, p)
	}

	// g^(step*(p-2)) is the inverse of g^step by Fermat's little theorem.
	e := new(big.Int).Sub(p, two)
	e.Mul(e, new(big.Int).SetUint64(step))
	gnInv := new(big.Int).Exp(g, e, p)

	log.Debugf("built bsgs table with %d entries for bound %d", step, bound)

	return &BabyStepGiantStep{
		p:     new(big.Int).Set(p),
		g:     new(big.Int).Set(g),
		step:  step,
		gnInv: gnInv,
		table: table,
	}, nil
}

// Step returns the table size, which is also the giant step length.
func (b *BabyStepGiantStep) Step() uint64 {
	return b.step
}

// Solve returns x with g^x = target (mod p). It fails with
// chainkeys.ErrNoSolution when x is outside the search space.
func (b *BabyStepGiantStep) Solve(target *big.Int) (*big.Int, error) {
	cur := new(big.Int).Mod(target, b.p)
	for i := uint64(0); i < b.step; i++ {
		if j, ok := b.table[string(cur.Bytes())]; ok {
			x := new(big.Int).SetUint64(i)
			x.Mul(x, new(big.Int).SetUint64(b.step))
			return x.Add(x, new(big.Int).SetUint64(j)), nil
		}
		cur.Mul(cur, b.gnInv).Mod(cur, b.p)
	}
	return nil, errors.Wrapf(chainkeys.ErrNoSolution, "numtheory: exponent exceeds %d", b.step*b.step)
}
