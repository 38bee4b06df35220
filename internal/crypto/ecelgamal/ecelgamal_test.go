package ecelgamal

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

func TestEncodeUnMap(t *testing.T) {
	maxMsg := MaxMessage()
	msgs := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(42),
		big.NewInt(1 << 40),
		new(big.Int).Lsh(big.NewInt(1), 200),
		maxMsg,
	}
	for _, m := range msgs {
		pt, err := Encode(m)
		require.NoError(t, err, "m=%s", m)
		assert.True(t, curve.IsOnCurve(pt.X, pt.Y))
		assert.Equal(t, 0, m.Cmp(pt.UnMap()), "m=%s", m)

		// The offset stays below the encoding base.
		lo := new(big.Int).Mul(m, base)
		assert.True(t, pt.X.Cmp(lo) >= 0)
		assert.True(t, pt.X.Cmp(lo.Add(lo, base)) < 0)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode(big.NewInt(777))
	require.NoError(t, err)
	b, err := Encode(big.NewInt(777))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestEncodeRange(t *testing.T) {
	over := new(big.Int).Add(MaxMessage(), big.NewInt(1))
	_, err := Encode(over)
	assert.True(t, errors.Is(err, chainkeys.ErrMessageRange))

	_, err = Encode(big.NewInt(-1))
	assert.True(t, errors.Is(err, chainkeys.ErrMessageRange))

	// 256*max + 255 must stay below p.
	top := new(big.Int).Mul(MaxMessage(), base)
	top.Add(top, big.NewInt(EncodingBase-1))
	assert.Equal(t, -1, top.Cmp(curve.Params().P))
}

func TestEncryptDecrypt(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	for _, v := range []int64{0, 5, 123456789} {
		m := big.NewInt(v)
		c, err := priv.EncryptMessage(rand.Reader, m)
		require.NoError(t, err)

		got, err := priv.DecryptMessage(c)
		require.NoError(t, err)
		assert.Equal(t, v, got.Int64())
	}
}

func TestDecryptWrongKey(t *testing.T) {
	alice, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	eve, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	pt, err := Encode(big.NewInt(99))
	require.NoError(t, err)
	c, err := alice.Encrypt(rand.Reader, pt)
	require.NoError(t, err)

	got, err := eve.Decrypt(c)
	require.NoError(t, err)
	assert.False(t, got.Equal(pt))
}

// Summed ciphertexts decrypt to the point sum, which does not unmap to the
// integer sum.
func TestPointSumDoesNotDecode(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	p1, err := Encode(big.NewInt(10))
	require.NoError(t, err)
	p2, err := Encode(big.NewInt(20))
	require.NoError(t, err)

	c1, err := priv.Encrypt(rand.Reader, p1)
	require.NoError(t, err)
	c2, err := priv.Encrypt(rand.Reader, p2)
	require.NoError(t, err)

	sum := &Ciphertext{}
	x, y := curve.Add(c1.C1.X, c1.C1.Y, c2.C1.X, c2.C1.Y)
	sum.C1 = &Point{X: x, Y: y}
	x, y = curve.Add(c1.C2.X, c1.C2.Y, c2.C2.X, c2.C2.Y)
	sum.C2 = &Point{X: x, Y: y}

	got, err := priv.Decrypt(sum)
	require.NoError(t, err)

	ex, ey := curve.Add(p1.X, p1.Y, p2.X, p2.Y)
	assert.True(t, got.Equal(&Point{X: ex, Y: ey}))
	assert.NotEqual(t, int64(30), got.UnMap().Int64())
}

func TestInvalidInputs(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	_, err = priv.Encrypt(rand.Reader, &Point{X: big.NewInt(1), Y: big.NewInt(1)})
	assert.True(t, errors.Is(err, chainkeys.ErrInvalidKey))

	_, err = priv.Decrypt(&Ciphertext{})
	assert.Error(t, err)

	_, err = NewPrivateKey(big.NewInt(0))
	assert.True(t, errors.Is(err, chainkeys.ErrInvalidKey))
	_, err = NewPrivateKey(curve.Params().N)
	assert.True(t, errors.Is(err, chainkeys.ErrInvalidKey))
}
