// Package ecdh derives a symmetric session key from one party's private
// scalar and the other party's public point.
package ecdh

import (
	"crypto/subtle"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/hashing"
	"github.com/smallyu/go-chainkeys/internal/crypto/symmetric"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// Session holds SHA256(X(own * peer)) and uses it as an AES-256 key.
// The secret itself is never exported.
type Session struct {
	secret []byte
	cipher *symmetric.AES256
}

var _ symmetric.Cipher = (*Session)(nil)

// Derive computes the session for own and peer. Both sides of an exchange
// obtain the same session.
func Derive(own *secp256k1.PrivateKey, peer *secp256k1.PublicKey) (*Session, error) {
	if own == nil || peer == nil {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "ecdh: missing key")
	}
	// X coordinate of own*peer, 32 bytes big-endian.
	shared := secp256k1.GenerateSharedSecret(own, peer)
	secret := hashing.SHA256(shared)

	c, err := symmetric.NewAES256(secret)
	if err != nil {
		return nil, errors.Wrap(err, "ecdh: session cipher")
	}
	return &Session{secret: secret, cipher: c}, nil
}

func (s *Session) Encrypt(plaintext []byte) ([]byte, error) {
	return s.cipher.Encrypt(plaintext)
}

func (s *Session) Decrypt(ciphertext []byte) ([]byte, error) {
	return s.cipher.Decrypt(ciphertext)
}

// Equal reports whether both sessions hold the same secret.
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return subtle.ConstantTimeCompare(s.secret, other.secret) == 1
}
