package numtheory

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

func hexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bad hex " + s)
	}
	return v
}

var (
	testPrime     = hexInt("f3760a5583d3509b3f72b16e3c892129fef350406f88c268f503e877e043514f")
	testGenerator = hexInt("1a2c6b6fb9971c4a993069c76258ee18ba80f778fd4d7bc07186c70e73b93004")
)

func TestGenerateSafePrime(t *testing.T) {
	for _, bits := range []int{16, 64, 128} {
		p, err := GenerateSafePrime(rand.Reader, bits, 20)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, IsSafePrime(p, 20), "%s is not a safe prime", p)
	}
}

func TestGenerateSafePrimeErrors(t *testing.T) {
	_, err := GenerateSafePrime(rand.Reader, 4, 10)
	assert.Error(t, err)

	_, err = GenerateSafePrime(rand.Reader, 64, 0)
	assert.Error(t, err)

	// Exhausted random source.
	_, err = GenerateSafePrime(bytes.NewReader(nil), 64, 10)
	assert.Error(t, err)
}

func TestIsSafePrime(t *testing.T) {
	assert.True(t, IsSafePrime(testPrime, 20))
	assert.True(t, IsSafePrime(big.NewInt(23), 20))
	assert.False(t, IsSafePrime(big.NewInt(13), 20)) // (13-1)/2 = 6
	assert.False(t, IsSafePrime(big.NewInt(21), 20))
}

func TestRandomNumberRange(t *testing.T) {
	p := big.NewInt(23)
	for i := 0; i < 200; i++ {
		x, err := RandomNumber(rand.Reader, p)
		require.NoError(t, err)
		assert.True(t, x.Cmp(two) >= 0)
		assert.True(t, x.Cmp(big.NewInt(22)) < 0)
	}

	_, err := RandomNumber(rand.Reader, big.NewInt(3))
	assert.Error(t, err)
}

func TestGeneratorFromPrime(t *testing.T) {
	g, err := GeneratorFromPrime(rand.Reader, 100, testPrime)
	require.NoError(t, err)

	order := new(big.Int).Rsh(testPrime, 1)
	assert.Equal(t, 0, new(big.Int).Exp(g, order, testPrime).Cmp(one))

	// The fixed generator has the subgroup order as well.
	assert.Equal(t, 0, new(big.Int).Exp(testGenerator, order, testPrime).Cmp(one))
}

func TestGeneratorFromPrimeExhausted(t *testing.T) {
	_, err := GeneratorFromPrime(rand.Reader, 0, testPrime)
	assert.True(t, errors.Is(err, chainkeys.ErrSearchExhausted))
}

func TestModInverse(t *testing.T) {
	tests := []struct {
		x, m, want int64
	}{
		{3, 11, 4},
		{10, 17, 12},
		{1, 7, 1},
		{-3, 11, 7},
		{25, 11, 4},
	}
	for _, tt := range tests {
		got, err := ModInverse(big.NewInt(tt.x), big.NewInt(tt.m))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Int64(), "inverse of %d mod %d", tt.x, tt.m)
	}

	x := hexInt("1234567890abcdef1234567890abcdef")
	inv, err := ModInverse(x, testPrime)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).ModInverse(x, testPrime), inv)
}

func TestModInverseNotCoprime(t *testing.T) {
	_, err := ModInverse(big.NewInt(6), big.NewInt(9))
	assert.True(t, errors.Is(err, chainkeys.ErrNotCoprime))

	_, err = ModInverse(big.NewInt(0), big.NewInt(7))
	assert.True(t, errors.Is(err, chainkeys.ErrNotCoprime))

	_, err = ModInverse(big.NewInt(3), big.NewInt(1))
	assert.Error(t, err)
}

func TestSqrtMod(t *testing.T) {
	secpP := hexInt("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	primes := []*big.Int{
		big.NewInt(13),  // 1 mod 4
		big.NewInt(17),  // 1 mod 16
		big.NewInt(41),  // 1 mod 8
		big.NewInt(23),  // 3 mod 4
		big.NewInt(257), // 1 mod 256
		secpP,
		testPrime,
	}
	for _, p := range primes {
		for n := int64(0); n < 60; n++ {
			nn := big.NewInt(n)
			want := new(big.Int).ModSqrt(nn, p)
			got, ok := SqrtMod(nn, p)
			if want == nil {
				assert.False(t, ok, "%d should be a non-residue mod %s", n, p)
				continue
			}
			require.True(t, ok, "%d should be a residue mod %s", n, p)
			sq := new(big.Int).Mul(got, got)
			assert.Equal(t, 0, sq.Mod(sq, p).Cmp(new(big.Int).Mod(nn, p)), "sqrt(%d) mod %s", n, p)
		}
	}
}

func TestBabyStepGiantStep(t *testing.T) {
	const bound = 1800000
	bsgs, err := NewBabyStepGiantStepWithBound(testPrime, testGenerator, bound)
	require.NoError(t, err)
	assert.Equal(t, uint64(1343), bsgs.Step())

	for _, x := range []int64{0, 1, 2, 1342, 1343, 1344, 77777, bound} {
		target := new(big.Int).Exp(testGenerator, big.NewInt(x), testPrime)
		got, err := bsgs.Solve(target)
		require.NoError(t, err)
		assert.Equal(t, x, got.Int64())
	}
}

func TestBabyStepGiantStepOutOfBound(t *testing.T) {
	bsgs, err := NewBabyStepGiantStepWithBound(testPrime, testGenerator, 1800000)
	require.NoError(t, err)

	target := new(big.Int).Exp(testGenerator, big.NewInt(2000000), testPrime)
	_, err = bsgs.Solve(target)
	assert.True(t, errors.Is(err, chainkeys.ErrNoSolution))
}

func TestBabyStepGiantStepDefaultBound(t *testing.T) {
	bsgs, err := NewBabyStepGiantStep(testPrime, testGenerator)
	require.NoError(t, err)
	assert.Equal(t, uint64(65537), bsgs.Step())

	x := int64(1)<<28 + 12345
	target := new(big.Int).Exp(testGenerator, big.NewInt(x), testPrime)
	got, err := bsgs.Solve(target)
	require.NoError(t, err)
	assert.Equal(t, x, got.Int64())
}

func TestBabyStepGiantStepInvalid(t *testing.T) {
	_, err := NewBabyStepGiantStepWithBound(testPrime, testGenerator, 0)
	assert.Error(t, err)
	_, err = NewBabyStepGiantStepWithBound(nil, testGenerator, 10)
	assert.Error(t, err)
}

func FuzzModInverse(f *testing.F) {
	f.Add([]byte{3}, []byte{11})
	f.Add([]byte{0}, []byte{7})
	f.Add([]byte{0xff, 0xff}, []byte{1})

	f.Fuzz(func(t *testing.T, xb, mb []byte) {
		x := new(big.Int).SetBytes(xb)
		m := new(big.Int).SetBytes(mb)
		inv, err := ModInverse(x, m)
		if err != nil {
			return
		}
		prod := new(big.Int).Mul(x, inv)
		if prod.Mod(prod, m).Cmp(one) != 0 {
			t.Fatalf("x*inv != 1 mod m for x=%s m=%s", x, m)
		}
	})
}
