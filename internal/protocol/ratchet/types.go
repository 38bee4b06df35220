package ratchet

import (
	"encoding/hex"

	"github.com/smallyu/go-chainkeys/internal/keys"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// Message types.
const (
	TypeSecret  = "RatchetSecret"
	TypeConfirm = "RatchetConfirm"
)

// Parameters configures one side of a ratchet exchange.
type Parameters struct {
	// Self is the local long-term key pair.
	Self *keys.KeyPair

	// PeerPub is the peer's X || Y public key string.
	PeerPub string

	// Policy is the chain policy of the ratcheted key pair.
	Policy keys.Policy

	// Initiator selects the side that produces the shared secret.
	Initiator bool
}

// Party identifies a participant by its X || Y public key string.
type Party struct {
	pub string
}

// NewParty creates a Party for an X || Y public key string.
func NewParty(pub string) *Party {
	return &Party{pub: pub}
}

func (p *Party) ID() string {
	return p.pub
}

func (p *Party) Key() []byte {
	b, _ := hex.DecodeString(p.pub)
	return b
}

// RatchetMessage is a concrete implementation of chainkeys.Message.
type RatchetMessage struct {
	FromParty  chainkeys.PartyID
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *RatchetMessage) Type() string {
	return m.TypeString
}

func (m *RatchetMessage) From() chainkeys.PartyID {
	return m.FromParty
}

func (m *RatchetMessage) Payload() []byte {
	return m.Data
}

func (m *RatchetMessage) RoundNumber() uint32 {
	return m.RoundNum
}
