package entity

import (
	"encoding/json"
	"fmt"

	"github.com/banana-coin-ledger/internal/domain/shared"
	"github.com/banana-coin-ledger/internal/domain/wallet"
	"go.mongodb.org/mongo-driver/bson"
)

// Kind identifies an entity error variant. It doubles as the serialization tag.
type Kind string

const KindWalletOperation Kind = "WalletOperationError"

// Error is implemented by every entity error variant and only by them
type Error interface {
	error
	Kind() Kind
	entityError()
}

// WalletOperationError wraps the error reported by the entity's wallet unchanged
type WalletOperationError struct {
	Err wallet.Error
}

func (e WalletOperationError) Error() string {
	return fmt.Sprintf("wallet operation failed: %v", e.Err)
}

func (e WalletOperationError) Unwrap() error {
	return e.Err
}

func (WalletOperationError) Kind() Kind { return KindWalletOperation }

func (WalletOperationError) entityError() {}

var _ Error = WalletOperationError{}

func (e WalletOperationError) MarshalJSON() ([]byte, error) {
	if e.Err == nil {
		return nil, fmt.Errorf("%w: %s without wallet error", shared.ErrMalformedVariant, KindWalletOperation)
	}
	inner, err := json.Marshal(e.Err)
	if err != nil {
		return nil, err
	}
	return shared.MarshalVariantJSON(string(KindWalletOperation), struct {
		Error json.RawMessage `json:"error"`
	}{Error: inner})
}

func (e *WalletOperationError) UnmarshalJSON(data []byte) error {
	decoded, err := decodeJSON(data)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

func (e WalletOperationError) MarshalBSON() ([]byte, error) {
	if e.Err == nil {
		return nil, fmt.Errorf("%w: %s without wallet error", shared.ErrMalformedVariant, KindWalletOperation)
	}
	inner, err := bson.Marshal(e.Err)
	if err != nil {
		return nil, err
	}
	return shared.MarshalVariantBSON(string(KindWalletOperation), bson.D{{Key: "error", Value: bson.Raw(inner)}})
}

func (e *WalletOperationError) UnmarshalBSON(data []byte) error {
	decoded, err := decodeBSON(data)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// DecodeError reads an entity error from its JSON record
func DecodeError(data []byte) (Error, error) {
	decoded, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// DecodeErrorBSON reads an entity error from its BSON document
func DecodeErrorBSON(data []byte) (Error, error) {
	decoded, err := decodeBSON(data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func decodeJSON(data []byte) (WalletOperationError, error) {
	tag, payload, err := shared.UnmarshalVariantJSON(data)
	if err != nil {
		return WalletOperationError{}, err
	}
	if Kind(tag) != KindWalletOperation {
		return WalletOperationError{}, fmt.Errorf("%w: entity error %q", shared.ErrUnknownVariant, tag)
	}

	var fields struct {
		Error json.RawMessage `json:"error"`
	}
	if err := payload(&fields, "error"); err != nil {
		return WalletOperationError{}, err
	}
	inner, err := wallet.DecodeError(fields.Error)
	if err != nil {
		return WalletOperationError{}, fmt.Errorf("decoding wrapped wallet error: %w", err)
	}
	return WalletOperationError{Err: inner}, nil
}

func decodeBSON(data []byte) (WalletOperationError, error) {
	tag, payload, err := shared.UnmarshalVariantBSON(data)
	if err != nil {
		return WalletOperationError{}, err
	}
	if Kind(tag) != KindWalletOperation {
		return WalletOperationError{}, fmt.Errorf("%w: entity error %q", shared.ErrUnknownVariant, tag)
	}

	var fields struct {
		Error bson.Raw `bson:"error"`
	}
	if err := payload(&fields, "error"); err != nil {
		return WalletOperationError{}, err
	}
	inner, err := wallet.DecodeErrorBSON(fields.Error)
	if err != nil {
		return WalletOperationError{}, fmt.Errorf("decoding wrapped wallet error: %w", err)
	}
	return WalletOperationError{Err: inner}, nil
}
