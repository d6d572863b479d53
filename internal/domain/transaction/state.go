package transaction

import (
	"fmt"

	"github.com/banana-coin-ledger/internal/domain/shared"
)

// StateKind identifies a lifecycle state. It doubles as the serialization tag.
type StateKind string

const (
	StateCreated   StateKind = "Created"
	StateOnProcess StateKind = "OnProcess"
	StateCompleted StateKind = "Completed"
	StateFailed    StateKind = "Failed"
	StateBlocked   StateKind = "Blocked"
)

func (k StateKind) valid() bool {
	switch k {
	case StateCreated, StateOnProcess, StateCompleted, StateFailed, StateBlocked:
		return true
	}
	return false
}

// State is a timestamped lifecycle state of a transaction.
// Two states are equal (==) when both kind and timestamp match. States are not ordered.
// The timestamp is an opaque tick supplied by the caller.
//
// No transition rules are enforced: any state may follow any other in a history.
type State struct {
	kind      StateKind
	timestamp uint64
}

func Created(timestamp uint64) State   { return State{kind: StateCreated, timestamp: timestamp} }
func OnProcess(timestamp uint64) State { return State{kind: StateOnProcess, timestamp: timestamp} }
func Completed(timestamp uint64) State { return State{kind: StateCompleted, timestamp: timestamp} }
func Failed(timestamp uint64) State    { return State{kind: StateFailed, timestamp: timestamp} }
func Blocked(timestamp uint64) State   { return State{kind: StateBlocked, timestamp: timestamp} }

// NewState builds a state of the given kind
func NewState(kind StateKind, timestamp uint64) (State, error) {
	if !kind.valid() {
		return State{}, fmt.Errorf("%w: transaction state %q", shared.ErrUnknownVariant, kind)
	}
	return State{kind: kind, timestamp: timestamp}, nil
}

func (s State) Kind() StateKind {
	return s.kind
}

func (s State) Timestamp() uint64 {
	return s.timestamp
}

func (s State) Equal(other State) bool {
	return s == other
}

func (s State) String() string {
	return fmt.Sprintf("%s{timestamp: %d}", s.kind, s.timestamp)
}

type stateFields struct {
	Timestamp uint64 `json:"timestamp" bson:"timestamp"`
}

func (s State) MarshalJSON() ([]byte, error) {
	if !s.kind.valid() {
		return nil, fmt.Errorf("%w: transaction state %q", shared.ErrUnknownVariant, s.kind)
	}
	return shared.MarshalVariantJSON(string(s.kind), stateFields{Timestamp: s.timestamp})
}

func (s *State) UnmarshalJSON(data []byte) error {
	tag, payload, err := shared.UnmarshalVariantJSON(data)
	if err != nil {
		return err
	}
	return s.decode(tag, payload)
}

// MarshalBSON fails for timestamps above math.MaxInt64, which BSON cannot represent
func (s State) MarshalBSON() ([]byte, error) {
	if !s.kind.valid() {
		return nil, fmt.Errorf("%w: transaction state %q", shared.ErrUnknownVariant, s.kind)
	}
	return shared.MarshalVariantBSON(string(s.kind), stateFields{Timestamp: s.timestamp})
}

func (s *State) UnmarshalBSON(data []byte) error {
	tag, payload, err := shared.UnmarshalVariantBSON(data)
	if err != nil {
		return err
	}
	return s.decode(tag, payload)
}

func (s *State) decode(tag string, payload shared.Payload) error {
	var fields stateFields
	if err := payload(&fields, "timestamp"); err != nil {
		return err
	}
	decoded, err := NewState(StateKind(tag), fields.Timestamp)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
