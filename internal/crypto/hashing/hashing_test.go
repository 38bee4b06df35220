package hashing

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestKnownDigests(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"sha256 empty", SHA256(), "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha256 abc", SHA256([]byte("abc")), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha256 parts", SHA256([]byte("a"), []byte("bc")), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"ripemd160 abc", RIPEMD160([]byte("abc")), "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{"keccak256 empty", Keccak256(), "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"double sha256 empty", DoubleSHA256(nil), "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hex.EncodeToString(tt.got))
		})
	}
}

func TestHash160(t *testing.T) {
	pub := mustHex("031e7bcc70c72770dbb72fea022e8a6d07f814d2ebe4de9ae3f7af75bf706902a7")
	assert.Equal(t, RIPEMD160(SHA256(pub)), Hash160(pub))
	assert.Len(t, Hash160(pub), 20)
}

func TestChecksum(t *testing.T) {
	data := []byte("checksum input")
	sum := Checksum(data)
	assert.Len(t, sum, ChecksumSize)
	assert.Equal(t, DoubleSHA256(data)[:4], sum)
	assert.Equal(t, SHA256(SHA256(data)), DoubleSHA256(data))
}
