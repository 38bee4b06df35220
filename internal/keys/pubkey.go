package keys

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/curves"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

const (
	// PublicKeyStringSize is the length of an X || Y hex string.
	PublicKeyStringSize = 4 * curves.CoordinateSize

	uncompressedPrefix byte = 0x04
)

// PublicKeyString renders a public key as X || Y, 128 lowercase hex
// characters.
func PublicKeyString(pub *secp256k1.PublicKey) string {
	buf := make([]byte, 0, 2*curves.CoordinateSize)
	buf = append(buf, curves.CoordinateBytes(pub.X())...)
	buf = append(buf, curves.CoordinateBytes(pub.Y())...)
	return hex.EncodeToString(buf)
}

// ParsePublicKeyString parses an X || Y hex string and checks that the
// point lies on the curve.
func ParsePublicKeyString(s string) (*secp256k1.PublicKey, error) {
	if len(s) != PublicKeyStringSize {
		return nil, chainkeys.NewDecodeError("public key", s,
			errors.Errorf("want %d hex characters, got %d", PublicKeyStringSize, len(s)))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, chainkeys.NewDecodeError("public key", s, err)
	}
	uncompressed := make([]byte, 0, 1+len(raw))
	uncompressed = append(uncompressed, uncompressedPrefix)
	uncompressed = append(uncompressed, raw...)
	pub, err := secp256k1.ParsePubKey(uncompressed)
	if err != nil {
		return nil, chainkeys.NewDecodeError("public key", s, errors.Wrap(chainkeys.ErrInvalidKey, err.Error()))
	}
	return pub, nil
}
