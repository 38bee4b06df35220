package chainkeys

import "errors"

// Common errors returned by the chainkeys packages.
var (
	// ErrSearchExhausted is returned when a bounded parameter search
	// (safe prime, generator, curve point encoding) runs out of attempts.
	ErrSearchExhausted = errors.New("search exhausted")

	// ErrNoSolution is returned when a discrete log lies outside the
	// baby-step giant-step search space.
	ErrNoSolution = errors.New("no discrete log solution found")

	// ErrNotCoprime is returned when a modular inverse is requested for
	// values that share a factor.
	ErrNotCoprime = errors.New("values are not coprime")

	// ErrVerificationFailed is returned when a signature over a shared
	// secret does not verify. The exchange must be abandoned.
	ErrVerificationFailed = errors.New("signature verification failed")

	ErrInvalidKey   = errors.New("invalid key")
	ErrMessageRange = errors.New("message out of range")
	ErrBlockSize    = errors.New("input is not a multiple of the block size")

	ErrInvalidMsg   = errors.New("invalid message received")
	ErrProtocolDone = errors.New("protocol already finished")
)

// PartyID represents a participant in a two-party exchange.
type PartyID interface {
	// ID returns the unique string identifier for the party. For key
	// exchanges this is the X||Y public key hex string.
	ID() string

	// Key returns the public key bytes associated with this party.
	Key() []byte
}

// Message is the generic interface for protocol messages.
type Message interface {
	// Type returns a string identifier for the message type.
	Type() string

	// From returns the sender's PartyID.
	From() PartyID

	// Payload returns the serialized data of the message.
	Payload() []byte

	// RoundNumber returns the protocol round this message belongs to.
	RoundNumber() uint32
}

// StateMachine drives a protocol. It follows a functional state transition
// pattern.
type StateMachine interface {
	// Update applies an incoming message to the current state.
	// It returns:
	// - next: The new state machine (nil if the protocol failed).
	// - out: Messages to be sent to the peer.
	// - err: An error if the transition failed.
	Update(msg Message) (next StateMachine, out []Message, err error)

	// Result returns the final output of the protocol.
	// Returns nil if the protocol is not yet finished.
	Result() interface{}

	// Details returns metadata about the current state.
	Details() string
}
