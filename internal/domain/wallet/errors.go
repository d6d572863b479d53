package wallet

import (
	"fmt"

	"github.com/banana-coin-ledger/internal/domain/shared"
)

// Kind identifies a wallet error variant. It doubles as the serialization tag.
type Kind string

const (
	KindAddCoin                   Kind = "AddCoinError"
	KindAddZeroCoin               Kind = "AddZeroCoinError"
	KindAddCoinOverflow           Kind = "AddCoinOverflowError"
	KindRemoveCoin                Kind = "RemoveCoinError"
	KindRemoveZeroCoin            Kind = "RemoveZeroCoinError"
	KindRemoveCoinOverflow        Kind = "RemoveCoinOverflowError"
	KindRemoveCoinNegativeBalance Kind = "RemoveCoinNegativeBalanceError"
)

// Error is implemented by every wallet error variant and only by them.
// Any non-nil error returned by a Wallet operation is an Error.
type Error interface {
	error
	Kind() Kind
	walletError()
}

// AddCoinError is a generic add failure. Wallet never returns it; it exists so the
// taxonomy can be decoded from records that carry it.
type AddCoinError struct{}

// AddZeroCoinError rejects adding an amount of zero
type AddZeroCoinError struct{}

// AddCoinOverflowError reports that the addition would leave the int64 range
type AddCoinOverflowError struct {
	CurrentAmount int64  `json:"current_amount" bson:"current_amount"`
	AddedAmount   uint32 `json:"added_amount" bson:"added_amount"`
}

// RemoveCoinError is a generic remove failure. Wallet never returns it.
type RemoveCoinError struct{}

// RemoveZeroCoinError rejects removing an amount of zero
type RemoveZeroCoinError struct{}

// RemoveCoinOverflowError reports that the subtraction would leave the int64 range
type RemoveCoinOverflowError struct {
	CurrentAmount int64  `json:"current_amount" bson:"current_amount"`
	RemovedAmount uint32 `json:"removed_amount" bson:"removed_amount"`
}

// RemoveCoinNegativeBalanceError reports a removal that would end below zero while
// negative balances are not allowed
type RemoveCoinNegativeBalanceError struct {
	CurrentAmount          int64  `json:"current_amount" bson:"current_amount"`
	RemovedAmount          uint32 `json:"removed_amount" bson:"removed_amount"`
	NegativeBalanceAllowed bool   `json:"negative_balance_allowed" bson:"negative_balance_allowed"`
}

func (AddCoinError) Error() string {
	return "cannot add coins to the wallet: unexpected failure"
}

func (AddZeroCoinError) Error() string {
	return "cannot add a zero amount of coins to the wallet"
}

func (e AddCoinOverflowError) Error() string {
	return fmt.Sprintf("cannot add coins to the wallet: overflow detected, current amount is %d and added amount is %d",
		e.CurrentAmount, e.AddedAmount)
}

func (RemoveCoinError) Error() string {
	return "cannot remove coins from the wallet: unexpected failure"
}

func (RemoveZeroCoinError) Error() string {
	return "cannot remove a zero amount of coins from the wallet"
}

func (e RemoveCoinOverflowError) Error() string {
	return fmt.Sprintf("cannot remove coins from the wallet: overflow detected, current amount is %d and removed amount is %d",
		e.CurrentAmount, e.RemovedAmount)
}

func (e RemoveCoinNegativeBalanceError) Error() string {
	return fmt.Sprintf("cannot remove coins from the wallet: balance would become negative, current amount is %d, removed amount is %d, negative balance allowed is %t",
		e.CurrentAmount, e.RemovedAmount, e.NegativeBalanceAllowed)
}

func (AddCoinError) Kind() Kind                   { return KindAddCoin }
func (AddZeroCoinError) Kind() Kind               { return KindAddZeroCoin }
func (AddCoinOverflowError) Kind() Kind           { return KindAddCoinOverflow }
func (RemoveCoinError) Kind() Kind                { return KindRemoveCoin }
func (RemoveZeroCoinError) Kind() Kind            { return KindRemoveZeroCoin }
func (RemoveCoinOverflowError) Kind() Kind        { return KindRemoveCoinOverflow }
func (RemoveCoinNegativeBalanceError) Kind() Kind { return KindRemoveCoinNegativeBalance }

func (AddCoinError) walletError()                   {}
func (AddZeroCoinError) walletError()               {}
func (AddCoinOverflowError) walletError()           {}
func (RemoveCoinError) walletError()                {}
func (RemoveZeroCoinError) walletError()            {}
func (RemoveCoinOverflowError) walletError()        {}
func (RemoveCoinNegativeBalanceError) walletError() {}

// Field sets without methods, so encoding a variant does not recurse into its marshaler
type (
	addCoinOverflowFields           AddCoinOverflowError
	removeCoinOverflowFields        RemoveCoinOverflowError
	removeCoinNegativeBalanceFields RemoveCoinNegativeBalanceError
)

// fields returns the payload serialized under the variant tag
func fields(e Error) any {
	switch v := e.(type) {
	case AddCoinOverflowError:
		return addCoinOverflowFields(v)
	case RemoveCoinOverflowError:
		return removeCoinOverflowFields(v)
	case RemoveCoinNegativeBalanceError:
		return removeCoinNegativeBalanceFields(v)
	default:
		return shared.NoFields{}
	}
}

func marshalJSON(e Error) ([]byte, error) {
	return shared.MarshalVariantJSON(string(e.Kind()), fields(e))
}

func marshalBSON(e Error) ([]byte, error) {
	return shared.MarshalVariantBSON(string(e.Kind()), fields(e))
}

func (e AddCoinError) MarshalJSON() ([]byte, error)                   { return marshalJSON(e) }
func (e AddZeroCoinError) MarshalJSON() ([]byte, error)               { return marshalJSON(e) }
func (e AddCoinOverflowError) MarshalJSON() ([]byte, error)           { return marshalJSON(e) }
func (e RemoveCoinError) MarshalJSON() ([]byte, error)                { return marshalJSON(e) }
func (e RemoveZeroCoinError) MarshalJSON() ([]byte, error)            { return marshalJSON(e) }
func (e RemoveCoinOverflowError) MarshalJSON() ([]byte, error)        { return marshalJSON(e) }
func (e RemoveCoinNegativeBalanceError) MarshalJSON() ([]byte, error) { return marshalJSON(e) }

func (e AddCoinError) MarshalBSON() ([]byte, error)                   { return marshalBSON(e) }
func (e AddZeroCoinError) MarshalBSON() ([]byte, error)               { return marshalBSON(e) }
func (e AddCoinOverflowError) MarshalBSON() ([]byte, error)           { return marshalBSON(e) }
func (e RemoveCoinError) MarshalBSON() ([]byte, error)                { return marshalBSON(e) }
func (e RemoveZeroCoinError) MarshalBSON() ([]byte, error)            { return marshalBSON(e) }
func (e RemoveCoinOverflowError) MarshalBSON() ([]byte, error)        { return marshalBSON(e) }
func (e RemoveCoinNegativeBalanceError) MarshalBSON() ([]byte, error) { return marshalBSON(e) }

// DecodeError reads a wallet error from its JSON record
func DecodeError(data []byte) (Error, error) {
	tag, payload, err := shared.UnmarshalVariantJSON(data)
	if err != nil {
		return nil, err
	}
	return decode(Kind(tag), payload)
}

// DecodeErrorBSON reads a wallet error from its BSON document
func DecodeErrorBSON(data []byte) (Error, error) {
	tag, payload, err := shared.UnmarshalVariantBSON(data)
	if err != nil {
		return nil, err
	}
	return decode(Kind(tag), payload)
}

func decode(kind Kind, payload shared.Payload) (Error, error) {
	switch kind {
	case KindAddCoin:
		return AddCoinError{}, nil
	case KindAddZeroCoin:
		return AddZeroCoinError{}, nil
	case KindAddCoinOverflow:
		var f addCoinOverflowFields
		if err := payload(&f, "current_amount", "added_amount"); err != nil {
			return nil, err
		}
		return AddCoinOverflowError(f), nil
	case KindRemoveCoin:
		return RemoveCoinError{}, nil
	case KindRemoveZeroCoin:
		return RemoveZeroCoinError{}, nil
	case KindRemoveCoinOverflow:
		var f removeCoinOverflowFields
		if err := payload(&f, "current_amount", "removed_amount"); err != nil {
			return nil, err
		}
		return RemoveCoinOverflowError(f), nil
	case KindRemoveCoinNegativeBalance:
		var f removeCoinNegativeBalanceFields
		if err := payload(&f, "current_amount", "removed_amount", "negative_balance_allowed"); err != nil {
			return nil, err
		}
		return RemoveCoinNegativeBalanceError(f), nil
	default:
		return nil, fmt.Errorf("%w: wallet error %q", shared.ErrUnknownVariant, kind)
	}
}

// Ensure every variant satisfies Error (compile-time check)
var (
	_ Error = AddCoinError{}
	_ Error = AddZeroCoinError{}
	_ Error = AddCoinOverflowError{}
	_ Error = RemoveCoinError{}
	_ Error = RemoveZeroCoinError{}
	_ Error = RemoveCoinOverflowError{}
	_ Error = RemoveCoinNegativeBalanceError{}
)
