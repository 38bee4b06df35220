// Package keys implements secp256k1 key pairs and the Bitcoin and Ethereum
// address derivation pipelines.
package keys

import (
	"encoding/hex"
	"io"
	"math/big"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/curves"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

var log = logging.Logger("keys")

var curve = curves.NewSecp256k1()

// PrivateKeyHexSize is the length of an exported private key.
const PrivateKeyHexSize = 2 * curves.CoordinateSize

// KeyPair is an immutable secp256k1 key pair bound to one chain policy.
// The address is derived on first use and cached.
type KeyPair struct {
	policy Policy
	priv   *secp256k1.PrivateKey

	once    sync.Once
	address string
	addrErr error
}

// Generate draws a fresh private scalar from random.
func Generate(policy Policy, random io.Reader) (*KeyPair, error) {
	d, err := curve.NewScalar(random)
	if err != nil {
		return nil, errors.Wrap(err, "keys: draw private scalar")
	}
	return FromScalar(policy, d)
}

// FromScalar imports a private scalar. It is reduced modulo the curve
// order and must not be zero after reduction.
func FromScalar(policy Policy, d *big.Int) (*KeyPair, error) {
	if policy == nil {
		return nil, errors.New("keys: nil policy")
	}
	k := new(big.Int).Mod(d, curve.Params().N)
	if k.Sign() == 0 {
		return nil, errors.Wrap(chainkeys.ErrInvalidKey, "keys: private scalar is zero")
	}
	return &KeyPair{
		policy: policy,
		priv:   secp256k1.PrivKeyFromBytes(curves.CoordinateBytes(k)),
	}, nil
}

// FromHex imports a big-endian private key given as exactly 64 hex
// characters, in either case.
func FromHex(policy Policy, s string) (*KeyPair, error) {
	if len(s) != PrivateKeyHexSize {
		return nil, chainkeys.NewSecretDecodeError("private key", s,
			errors.Errorf("want %d hex characters, got %d", PrivateKeyHexSize, len(s)))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, chainkeys.NewSecretDecodeError("private key", s, err)
	}
	return FromScalar(policy, new(big.Int).SetBytes(raw))
}

func (kp *KeyPair) Policy() Policy {
	return kp.policy
}

// PrivateKey exposes the underlying secp256k1 key for signing.
func (kp *KeyPair) PrivateKey() *secp256k1.PrivateKey {
	return kp.priv
}

func (kp *KeyPair) PublicKey() *secp256k1.PublicKey {
	return kp.priv.PubKey()
}

// Scalar returns a copy of the private scalar.
func (kp *KeyPair) Scalar() *big.Int {
	return new(big.Int).SetBytes(kp.priv.Serialize())
}

// PrivateKeyHex returns the private key as 64 lowercase hex characters.
func (kp *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(kp.priv.Serialize())
}

// EntirePubValue returns the X || Y hex string exchanged between parties.
func (kp *KeyPair) EntirePubValue() string {
	return PublicKeyString(kp.PublicKey())
}

// PubKeyBytes returns the policy's serialization of the public key.
func (kp *KeyPair) PubKeyBytes() []byte {
	return kp.policy.PubKeyBytes(kp.PublicKey())
}

// UsedPubKeyValue returns PubKeyBytes as lowercase hex.
func (kp *KeyPair) UsedPubKeyValue() string {
	return hex.EncodeToString(kp.PubKeyBytes())
}

// Address returns the chain address, deriving it on the first call.
func (kp *KeyPair) Address() (string, error) {
	kp.once.Do(func() {
		kp.address, kp.addrErr = kp.policy.DeriveAddress(kp.PubKeyBytes())
		if kp.addrErr == nil {
			log.Debugf("derived %s address %s", kp.policy.Name(), kp.address)
		}
	})
	return kp.address, kp.addrErr
}
