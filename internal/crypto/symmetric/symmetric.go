// Package symmetric provides the block cipher wrapper used to protect KDF
// secrets in transit.
package symmetric

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// KeySize is the AES-256 key length.
const KeySize = 32

// Cipher is a keyed, length preserving transform over whole blocks.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// AES256 applies AES-256 independently to each 16-byte block (ECB).
// Inputs must be a multiple of the block size; no padding is added.
type AES256 struct {
	block cipher.Block
}

// NewAES256 creates an AES256 cipher from a 32-byte key.
func NewAES256(key []byte) (*AES256, error) {
	if len(key) != KeySize {
		return nil, errors.Wrapf(chainkeys.ErrInvalidKey, "symmetric: key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "symmetric: create aes cipher")
	}
	return &AES256{block: block}, nil
}

func (c *AES256) Encrypt(plaintext []byte) ([]byte, error) {
	return c.apply(plaintext, c.block.Encrypt)
}

func (c *AES256) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.apply(ciphertext, c.block.Decrypt)
}

func (c *AES256) apply(in []byte, fn func(dst, src []byte)) ([]byte, error) {
	if len(in)%aes.BlockSize != 0 {
		return nil, errors.Wrapf(chainkeys.ErrBlockSize, "symmetric: %d bytes", len(in))
	}
	out := make([]byte, len(in))
	for i := 0; i < len(in); i += aes.BlockSize {
		fn(out[i:i+aes.BlockSize], in[i:i+aes.BlockSize])
	}
	return out, nil
}
