package hashing

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ripemd160"
)

// ChecksumSize is the length of a base58check checksum.
const ChecksumSize = 4

// SHA256 hashes the concatenation of parts.
func SHA256(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// DoubleSHA256 computes SHA256(SHA256(data)).
func DoubleSHA256(data []byte) []byte {
	return chainhash.DoubleHashB(data)
}

// RIPEMD160 hashes data with RIPEMD-160.
func RIPEMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	return RIPEMD160(SHA256(data))
}

// Keccak256 hashes the concatenation of parts with legacy Keccak-256
// (not NIST SHA3-256).
func Keccak256(parts ...[]byte) []byte {
	return crypto.Keccak256(parts...)
}

// Checksum returns the first four bytes of DoubleSHA256(data).
func Checksum(data []byte) []byte {
	return DoubleSHA256(data)[:ChecksumSize]
}
