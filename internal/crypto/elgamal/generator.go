package elgamal

import (
	"io"
	"math/big"
	"sync"

	"github.com/smallyu/go-chainkeys/internal/crypto/numtheory"
)

// KeyGenerator owns a private key together with the discrete log table
// needed for additive decryption. The table is built on first use and shared
// read-only afterwards.
type KeyGenerator struct {
	key   *PrivateKey
	bound uint64

	once sync.Once
	bsgs *numtheory.BabyStepGiantStep
	err  error
}

// NewKeyGenerator generates a fresh key under params. bound limits the
// additive plaintexts that can be decrypted; zero selects
// numtheory.DefaultBound.
func NewKeyGenerator(random io.Reader, params *Params, bound uint64) (*KeyGenerator, error) {
	key, err := GenerateKey(random, params)
	if err != nil {
		return nil, err
	}
	return NewKeyGeneratorFromKey(key, bound), nil
}

// NewKeyGeneratorFromKey wraps an existing private key.
func NewKeyGeneratorFromKey(key *PrivateKey, bound uint64) *KeyGenerator {
	if bound == 0 {
		bound = numtheory.DefaultBound
	}
	return &KeyGenerator{key: key, bound: bound}
}

func (k *KeyGenerator) PrivateKey() *PrivateKey {
	return k.key
}

func (k *KeyGenerator) PublicKey() *PublicKey {
	return &k.key.PublicKey
}

// Solver returns the lazily built discrete log table.
func (k *KeyGenerator) Solver() (*numtheory.BabyStepGiantStep, error) {
	k.once.Do(func() {
		k.bsgs, k.err = numtheory.NewBabyStepGiantStepWithBound(k.key.P, k.key.G, k.bound)
	})
	return k.bsgs, k.err
}

// DecryptAdditive decrypts an additive ciphertext with the owned table.
func (k *KeyGenerator) DecryptAdditive(c *Ciphertext) (*big.Int, error) {
	bsgs, err := k.Solver()
	if err != nil {
		return nil, err
	}
	return k.key.DecryptAdditive(c, bsgs)
}
