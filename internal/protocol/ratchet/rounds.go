package ratchet

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-chainkeys/internal/keys"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// confirmSize is the X || Y public value followed by a hex proof of
// possession.
const confirmSize = keys.PublicKeyStringSize + 2*schnorr.ProofSize

// proofContext binds a possession proof to one initiator/responder pair.
func proofContext(initiator, responder string) []byte {
	return []byte("chainkeys/ratchet/" + initiator + "/" + responder)
}

// round1 produces the encrypted secret. The initiator can already derive the
// new key since it holds the signature; it keeps it until confirmed.
func (s *state) round1() (chainkeys.StateMachine, []chainkeys.Message, error) {
	secret, err := s.gen.GenerateSharedSecret(s.params.Self, s.params.PeerPub)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ratchet: generate secret")
	}

	pending, err := s.gen.NewKeyPair(s.params.Policy, secret, s.self.ID(), s.params.PeerPub)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ratchet: derive key")
	}
	s.pending = pending
	s.round = 2

	msg := &RatchetMessage{
		FromParty:  s.self,
		Data:       []byte(secret),
		TypeString: TypeSecret,
		RoundNum:   1,
	}
	return s, []chainkeys.Message{msg}, nil
}

// round2 runs on the responder: verify and derive, then confirm the new
// public value together with a proof that it holds the new scalar.
func (s *state) round2(msg chainkeys.Message) (chainkeys.StateMachine, []chainkeys.Message, error) {
	if msg.Type() != TypeSecret {
		return nil, nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "ratchet: got %s, want %s", msg.Type(), TypeSecret)
	}
	kp, err := s.gen.NewKeyPair(s.params.Policy, string(msg.Payload()), s.peer.ID(), s.self.ID())
	if err != nil {
		return nil, nil, errors.Wrap(err, "ratchet: derive key")
	}
	pub := kp.PublicKey()
	proof, err := schnorr.Prove(rand.Reader, kp.Scalar(), pub.X(), pub.Y(), proofContext(s.peer.ID(), s.self.ID()))
	if err != nil {
		return nil, nil, errors.Wrap(err, "ratchet: prove possession")
	}
	s.result = kp
	s.round = 2
	log.Debugf("responder derived ratcheted %s key", s.params.Policy.Name())

	confirm := &RatchetMessage{
		FromParty:  s.self,
		Data:       []byte(kp.EntirePubValue() + hex.EncodeToString(proof.Bytes())),
		TypeString: TypeConfirm,
		RoundNum:   2,
	}
	return s, []chainkeys.Message{confirm}, nil
}

// finalize runs on the initiator and checks that both sides hold the same
// new key.
func (s *state) finalize(msg chainkeys.Message) (chainkeys.StateMachine, []chainkeys.Message, error) {
	if msg.Type() != TypeConfirm {
		return nil, nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "ratchet: got %s, want %s", msg.Type(), TypeConfirm)
	}
	data := string(msg.Payload())
	if len(data) != confirmSize {
		return nil, nil, errors.Wrapf(chainkeys.ErrInvalidMsg, "ratchet: confirmation is %d bytes, want %d", len(data), confirmSize)
	}
	pubStr, proofHex := data[:keys.PublicKeyStringSize], data[keys.PublicKeyStringSize:]
	if pubStr != s.pending.EntirePubValue() {
		log.Warnf("peer confirmed a different ratcheted key")
		return nil, nil, errors.Wrap(chainkeys.ErrVerificationFailed, "ratchet: confirmation mismatch")
	}
	raw, err := hex.DecodeString(proofHex)
	if err != nil {
		return nil, nil, chainkeys.NewDecodeError("possession proof", proofHex, err)
	}
	proof, err := schnorr.ParseProof(raw)
	if err != nil {
		return nil, nil, err
	}
	pub := s.pending.PublicKey()
	if !proof.Verify(pub.X(), pub.Y(), proofContext(s.self.ID(), s.peer.ID())) {
		log.Warnf("peer failed to prove possession of the ratcheted key")
		return nil, nil, errors.Wrap(chainkeys.ErrVerificationFailed, "ratchet: possession proof")
	}
	s.result = s.pending
	s.pending = nil
	log.Debugf("initiator confirmed ratcheted %s key", s.params.Policy.Name())
	return s, nil, nil
}
