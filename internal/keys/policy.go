package keys

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/curves"
	"github.com/smallyu/go-chainkeys/internal/crypto/hashing"
)

// Address prefixes and sizes.
const (
	BitcoinMainNet      byte = 0x00
	ParityEven          byte = 0x02
	ParityOdd           byte = 0x03
	bitcoinPayloadSize       = 1 + 20 + hashing.ChecksumSize
	ethereumAddressSize      = 20
	ethereumPrefix           = "0x"
)

// Policy selects how a chain turns a secp256k1 public key into an address.
type Policy interface {
	// Name returns the chain tag ("btc", "eth").
	Name() string

	// PubKeyBytes serializes the public key in the form the chain hashes.
	PubKeyBytes(pub *secp256k1.PublicKey) []byte

	// DeriveAddress computes the address for serialized public key bytes.
	DeriveAddress(pubKeyBytes []byte) (string, error)

	// ValidateAddress checks the format and checksum of an address string.
	ValidateAddress(addr string) error
}

// Bitcoin derives base58check P2PKH addresses from a compressed key.
type Bitcoin struct {
	Network byte
}

func (Bitcoin) Name() string { return "btc" }

// PubKeyBytes returns prefix || X where the prefix is ParityEven when the
// last byte of X is even and ParityOdd otherwise.
func (Bitcoin) PubKeyBytes(pub *secp256k1.PublicKey) []byte {
	x := curves.CoordinateBytes(pub.X())
	out := make([]byte, 0, 1+len(x))
	if x[len(x)-1]%2 == 0 {
		out = append(out, ParityEven)
	} else {
		out = append(out, ParityOdd)
	}
	return append(out, x...)
}

func (b Bitcoin) DeriveAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != 1+curves.CoordinateSize {
		return "", errors.Errorf("keys: bitcoin public key must be %d bytes, got %d", 1+curves.CoordinateSize, len(pubKeyBytes))
	}
	payload := make([]byte, 0, bitcoinPayloadSize)
	payload = append(payload, b.Network)
	payload = append(payload, hashing.Hash160(pubKeyBytes)...)
	payload = append(payload, hashing.Checksum(payload)...)
	return base58.Encode(payload), nil
}

func (b Bitcoin) ValidateAddress(addr string) error {
	dec := base58.Decode(addr)
	if len(dec) == 0 {
		return errors.Errorf("keys: cannot decode base58 address %q", addr)
	}
	if len(dec) != bitcoinPayloadSize {
		return errors.Errorf("keys: address decodes to %d bytes, want %d", len(dec), bitcoinPayloadSize)
	}
	if dec[0] != b.Network {
		return errors.Errorf("keys: address network byte %#x, want %#x", dec[0], b.Network)
	}
	body := dec[:len(dec)-hashing.ChecksumSize]
	if !bytes.Equal(hashing.Checksum(body), dec[len(body):]) {
		return errors.New("keys: address checksum mismatch")
	}
	return nil
}

// Ethereum derives EIP-55 checksummed addresses from Keccak256(X || Y).
type Ethereum struct{}

func (Ethereum) Name() string { return "eth" }

// PubKeyBytes returns X || Y without a prefix byte.
func (Ethereum) PubKeyBytes(pub *secp256k1.PublicKey) []byte {
	out := make([]byte, 0, 2*curves.CoordinateSize)
	out = append(out, curves.CoordinateBytes(pub.X())...)
	return append(out, curves.CoordinateBytes(pub.Y())...)
}

func (Ethereum) DeriveAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != 2*curves.CoordinateSize {
		return "", errors.Errorf("keys: ethereum public key must be %d bytes, got %d", 2*curves.CoordinateSize, len(pubKeyBytes))
	}
	digest := hashing.Keccak256(pubKeyBytes)
	return ChecksumAddress(digest[len(digest)-ethereumAddressSize:]), nil
}

// ValidateAddress accepts mixed-case addresses only when the EIP-55
// checksum matches. All-lowercase and all-uppercase forms carry no checksum
// and are accepted.
func (Ethereum) ValidateAddress(addr string) error {
	if !strings.HasPrefix(addr, ethereumPrefix) {
		return errors.Errorf("keys: address %q lacks 0x prefix", addr)
	}
	body := addr[len(ethereumPrefix):]
	raw, err := hex.DecodeString(body)
	if err != nil {
		return errors.Wrapf(err, "keys: address %q is not hex", addr)
	}
	if len(raw) != ethereumAddressSize {
		return errors.Errorf("keys: address is %d bytes, want %d", len(raw), ethereumAddressSize)
	}
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if ChecksumAddress(raw) != addr {
		return errors.New("keys: address checksum mismatch")
	}
	return nil
}

// ChecksumAddress renders a 20-byte address with the EIP-55 mixed-case
// checksum: nibble i is upper-cased when nibble i of
// Keccak256(lowercase hex) is greater than 7.
func ChecksumAddress(addr []byte) string {
	lower := hex.EncodeToString(addr)
	hash := hashing.Keccak256([]byte(lower))

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' {
			continue
		}
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble > 7 {
			out[i] = c - 'a' + 'A'
		}
	}
	return ethereumPrefix + string(out)
}

// PolicyByName returns the policy for a chain tag.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "btc", "bitcoin":
		return Bitcoin{Network: BitcoinMainNet}, nil
	case "eth", "ethereum":
		return Ethereum{}, nil
	}
	return nil, errors.Errorf("keys: unknown chain %q", name)
}
