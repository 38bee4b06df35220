// Package ratchet runs the two message exchange that replaces a shared key
// pair. The initiator sends an encrypted, signed secret (round 1); the
// responder derives the new key and confirms its public value (round 2).
package ratchet

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/keys"
	"github.com/smallyu/go-chainkeys/internal/protocol/kdf"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

var log = logging.Logger("ratchet")

type state struct {
	params *Parameters
	self   *Party
	peer   *Party

	// Current round number (1-based)
	round int

	gen *kdf.Generator

	// Key derived locally by the initiator, awaiting confirmation.
	pending *keys.KeyPair

	result *keys.KeyPair
}

// NewStateMachine initializes one side of a ratchet exchange.
// The initiator immediately produces its round 1 message.
func NewStateMachine(params *Parameters) (chainkeys.StateMachine, []chainkeys.Message, error) {
	if params == nil || params.Self == nil || params.Policy == nil {
		return nil, nil, errors.New("ratchet: incomplete parameters")
	}
	gen, err := kdf.New(params.Self, params.PeerPub)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ratchet: session")
	}
	s := &state{
		params: params,
		self:   NewParty(params.Self.EntirePubValue()),
		peer:   NewParty(params.PeerPub),
		round:  1,
		gen:    gen,
	}
	if params.Initiator {
		return s.round1()
	}
	return s, nil, nil
}

func (s *state) Update(msg chainkeys.Message) (chainkeys.StateMachine, []chainkeys.Message, error) {
	if s.result != nil {
		return nil, nil, chainkeys.ErrProtocolDone
	}
	if msg == nil || msg.From() == nil {
		return nil, nil, errors.Wrap(chainkeys.ErrInvalidMsg, "ratchet: empty message")
	}

	senderID := msg.From().ID()
	if senderID == s.self.ID() {
		return s, nil, nil // Ignore own messages if looped back
	}
	if senderID != s.peer.ID() {
		return nil, nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "ratchet: unexpected sender %.16s", senderID)
	}

	// Validate message round
	if msg.RoundNumber() != uint32(s.round) {
		return nil, nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "ratchet: received message for round %d, expected %d", msg.RoundNumber(), s.round)
	}

	switch {
	case s.round == 1 && !s.params.Initiator:
		return s.round2(msg)
	case s.round == 2 && s.params.Initiator:
		return s.finalize(msg)
	default:
		return nil, nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "ratchet: no round %d for this role", s.round)
	}
}

func (s *state) Result() interface{} {
	if s.result == nil {
		return nil
	}
	return s.result
}

func (s *state) Details() string {
	role := "responder"
	if s.params.Initiator {
		role = "initiator"
	}
	if s.result != nil {
		return fmt.Sprintf("Ratchet %s done", role)
	}
	return fmt.Sprintf("Ratchet %s round %d", role, s.round)
}
