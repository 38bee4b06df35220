// Package kdf lets two parties holding an ECDH session agree on a new
// private scalar. The initiator signs the peer's public key string, appends
// SHA256 of the signature as key material and encrypts both under the
// session. The peer decrypts, verifies the signature and keeps the scalar.
package kdf

import (
	"bytes"
	"encoding/hex"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/hashing"
	"github.com/smallyu/go-chainkeys/internal/keys"
	"github.com/smallyu/go-chainkeys/internal/protocol/ecdh"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

var log = logging.Logger("kdf")

const (
	scalarSize    = 32
	signatureSize = 2 * scalarSize
	plaintextSize = signatureSize + scalarSize

	// SecretSize is the length of the hex encoded shared secret.
	SecretSize = 2 * plaintextSize
)

// Generator wraps the ECDH session between its owner and one peer.
type Generator struct {
	session *ecdh.Session
}

// New derives the session between own and the peer identified by its
// X || Y public key string.
func New(own *keys.KeyPair, peerPub string) (*Generator, error) {
	peer, err := keys.ParsePublicKeyString(peerPub)
	if err != nil {
		return nil, err
	}
	session, err := ecdh.Derive(own.PrivateKey(), peer)
	if err != nil {
		return nil, err
	}
	return &Generator{session: session}, nil
}

// Equal reports whether both generators share the same session. This holds
// exactly for the two parties of one exchange.
func (g *Generator) Equal(other *Generator) bool {
	return g.session.Equal(other.session)
}

// GenerateSharedSecret signs peerPub with signer and returns the encrypted
// signature and key material as SecretSize lowercase hex characters.
// Signing is deterministic, so equal inputs give equal secrets.
func (g *Generator) GenerateSharedSecret(signer *keys.KeyPair, peerPub string) (string, error) {
	// [recovery id][R][S]
	compact := ecdsa.SignCompact(signer.PrivateKey(), messageHash(peerPub), false)
	sig := compact[1:]

	plaintext := make([]byte, 0, plaintextSize)
	plaintext = append(plaintext, sig...)
	plaintext = append(plaintext, hashing.SHA256(sig)...)

	ciphertext, err := g.session.Encrypt(plaintext)
	if err != nil {
		return "", errors.Wrap(err, "kdf: encrypt secret")
	}
	return hex.EncodeToString(ciphertext), nil
}

// GetNewKeyFromSecret decrypts a shared secret, verifies that signerPub
// signed verifierPub and returns the derived scalar reduced modulo the
// curve order. A bad signature yields chainkeys.ErrVerificationFailed and no
// scalar.
func (g *Generator) GetNewKeyFromSecret(secret, signerPub, verifierPub string) (*big.Int, error) {
	if len(secret) != SecretSize {
		return nil, chainkeys.NewDecodeError("shared secret", secret,
			errors.Errorf("want %d hex characters, got %d", SecretSize, len(secret)))
	}
	ciphertext, err := hex.DecodeString(secret)
	if err != nil {
		return nil, chainkeys.NewDecodeError("shared secret", secret, err)
	}
	signer, err := keys.ParsePublicKeyString(signerPub)
	if err != nil {
		return nil, err
	}

	plaintext, err := g.session.Decrypt(ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "kdf: decrypt secret")
	}
	sig, material := plaintext[:signatureSize], plaintext[signatureSize:]

	if !verify(sig, messageHash(verifierPub), signer) {
		log.Warnf("signature from %s over shared secret does not verify", signerPub[:16])
		return nil, errors.Wrap(chainkeys.ErrVerificationFailed, "kdf: signature")
	}
	if !bytes.Equal(hashing.SHA256(sig), material) {
		log.Warnf("key material from %s does not match its signature", signerPub[:16])
		return nil, errors.Wrap(chainkeys.ErrVerificationFailed, "kdf: key material")
	}

	d := new(big.Int).SetBytes(material)
	d.Mod(d, secp256k1.S256().Params().N)
	if d.Sign() == 0 {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "kdf: derived scalar is zero")
	}
	return d, nil
}

// NewKeyPair runs GetNewKeyFromSecret and imports the scalar under policy.
func (g *Generator) NewKeyPair(policy keys.Policy, secret, signerPub, verifierPub string) (*keys.KeyPair, error) {
	d, err := g.GetNewKeyFromSecret(secret, signerPub, verifierPub)
	if err != nil {
		return nil, err
	}
	return keys.FromScalar(policy, d)
}

func messageHash(msg string) []byte {
	return hashing.SHA256([]byte(msg))
}

func verify(sig, hash []byte, pub *secp256k1.PublicKey) bool {
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:scalarSize]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig[scalarSize:]); overflow {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(hash, pub)
}
