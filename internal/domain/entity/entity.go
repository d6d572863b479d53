package entity

import (
	"encoding/json"
	"errors"

	"github.com/banana-coin-ledger/internal/domain/wallet"
	"go.mongodb.org/mongo-driver/bson"
)

// Entity represents a person or an organization owning exactly one wallet.
// The id is expected to be unique; uniqueness is up to the caller.
type Entity struct {
	id     string
	name   string
	wallet wallet.Wallet
}

// NewEntity creates an entity that takes ownership of the given wallet
func NewEntity(id, name string, w wallet.Wallet) *Entity {
	return &Entity{
		id:     id,
		name:   name,
		wallet: w,
	}
}

func (e *Entity) ID() string {
	return e.id
}

func (e *Entity) Name() string {
	return e.name
}

// Wallet returns a copy of the entity's wallet. Changing the copy does not affect the entity.
func (e *Entity) Wallet() wallet.Wallet {
	return e.wallet
}

// AddCoins adds coins to the entity's wallet.
// Wallet failures are returned as WalletOperationError.
func (e *Entity) AddCoins(amount uint32) error {
	if err := e.wallet.AddCoins(amount); err != nil {
		return walletOperationError(err)
	}
	return nil
}

// RemoveCoins removes coins from the entity's wallet.
// Wallet failures are returned as WalletOperationError.
func (e *Entity) RemoveCoins(amount uint32, allowNegativeBalance bool) error {
	if err := e.wallet.RemoveCoins(amount, allowNegativeBalance); err != nil {
		return walletOperationError(err)
	}
	return nil
}

func walletOperationError(err error) error {
	var walletErr wallet.Error
	if errors.As(err, &walletErr) {
		return WalletOperationError{Err: walletErr}
	}
	return err
}

type entityDocument struct {
	ID     string        `json:"id" bson:"id"`
	Name   string        `json:"name" bson:"name"`
	Wallet wallet.Wallet `json:"wallet" bson:"wallet"`
}

func (e Entity) document() entityDocument {
	return entityDocument{ID: e.id, Name: e.name, Wallet: e.wallet}
}

func (e *Entity) restore(doc entityDocument) {
	e.id, e.name, e.wallet = doc.ID, doc.Name, doc.Wallet
}

func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.document())
}

func (e *Entity) UnmarshalJSON(data []byte) error {
	var doc entityDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	e.restore(doc)
	return nil
}

func (e Entity) MarshalBSON() ([]byte, error) {
	return bson.Marshal(e.document())
}

func (e *Entity) UnmarshalBSON(data []byte) error {
	var doc entityDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	e.restore(doc)
	return nil
}
