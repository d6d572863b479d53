package transaction

import (
	"encoding/json"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
)

// Transaction is an immutable record of a coin movement between two entities,
// referenced by id only. It does not move any coins itself.
//
// The history is kept in insertion order, oldest first. Whether the current state
// matches the last history entry is left to the caller.
type Transaction struct {
	id           string
	fromEntityID string
	toEntityID   string
	amount       uint32
	description  string
	currentState State
	stateHistory []State
}

// NewTransaction creates a fully formed transaction. No validation is performed.
func NewTransaction(
	id string,
	fromEntityID string,
	toEntityID string,
	amount uint32,
	description string,
	currentState State,
	stateHistory []State,
) Transaction {
	return Transaction{
		id:           id,
		fromEntityID: fromEntityID,
		toEntityID:   toEntityID,
		amount:       amount,
		description:  description,
		currentState: currentState,
		stateHistory: slices.Clone(stateHistory),
	}
}

func (t Transaction) ID() string {
	return t.id
}

// FromEntityID returns the id of the entity the coins are withdrawn from
func (t Transaction) FromEntityID() string {
	return t.fromEntityID
}

// ToEntityID returns the id of the entity the coins are deposited to
func (t Transaction) ToEntityID() string {
	return t.toEntityID
}

func (t Transaction) Amount() uint32 {
	return t.amount
}

func (t Transaction) Description() string {
	return t.description
}

func (t Transaction) CurrentState() State {
	return t.currentState
}

// StateHistory returns a copy of the recorded states, oldest first
func (t Transaction) StateHistory() []State {
	return slices.Clone(t.stateHistory)
}

type transactionDocument struct {
	ID           string  `json:"id" bson:"id"`
	FromEntityID string  `json:"from_entity_id" bson:"from_entity_id"`
	ToEntityID   string  `json:"to_entity_id" bson:"to_entity_id"`
	Amount       uint32  `json:"amount" bson:"amount"`
	Description  string  `json:"description" bson:"description"`
	CurrentState State   `json:"current_state" bson:"current_state"`
	StateHistory []State `json:"state_history" bson:"state_history"`
}

func (t Transaction) document() transactionDocument {
	history := t.stateHistory
	if history == nil {
		history = []State{}
	}
	return transactionDocument{
		ID:           t.id,
		FromEntityID: t.fromEntityID,
		ToEntityID:   t.toEntityID,
		Amount:       t.amount,
		Description:  t.description,
		CurrentState: t.currentState,
		StateHistory: history,
	}
}

func fromDocument(doc transactionDocument) Transaction {
	return NewTransaction(doc.ID, doc.FromEntityID, doc.ToEntityID, doc.Amount, doc.Description, doc.CurrentState, doc.StateHistory)
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.document())
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var doc transactionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = fromDocument(doc)
	return nil
}

func (t Transaction) MarshalBSON() ([]byte, error) {
	return bson.Marshal(t.document())
}

func (t *Transaction) UnmarshalBSON(data []byte) error {
	var doc transactionDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = fromDocument(doc)
	return nil
}
