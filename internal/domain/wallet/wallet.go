package wallet

import (
	"encoding/json"
	"math"

	"go.mongodb.org/mongo-driver/bson"
)

// Wallet holds a signed coin balance. It has value semantics: copies are independent.
type Wallet struct {
	balance int64
}

// NewWallet creates a wallet with the given initial balance. Negative balances are accepted.
func NewWallet(initialBalance int64) Wallet {
	return Wallet{balance: initialBalance}
}

// Balance returns the current number of coins
func (w Wallet) Balance() int64 {
	return w.balance
}

// AddCoins credits amount to the wallet.
// The balance is only updated when no error is returned.
func (w *Wallet) AddCoins(amount uint32) error {
	if amount == 0 {
		return AddZeroCoinError{}
	}

	total, ok := checkedAdd(w.balance, int64(amount))
	if !ok {
		return AddCoinOverflowError{CurrentAmount: w.balance, AddedAmount: amount}
	}

	w.balance = total
	return nil
}

// RemoveCoins debits amount from the wallet. A negative resulting balance is rejected
// unless allowNegativeBalance is set.
// The balance is only updated when no error is returned.
func (w *Wallet) RemoveCoins(amount uint32, allowNegativeBalance bool) error {
	if amount == 0 {
		return RemoveZeroCoinError{}
	}

	remaining, ok := checkedSub(w.balance, int64(amount))
	if !ok {
		return RemoveCoinOverflowError{CurrentAmount: w.balance, RemovedAmount: amount}
	}
	if remaining < 0 && !allowNegativeBalance {
		return RemoveCoinNegativeBalanceError{
			CurrentAmount:          w.balance,
			RemovedAmount:          amount,
			NegativeBalanceAllowed: allowNegativeBalance,
		}
	}

	w.balance = remaining
	return nil
}

// checkedAdd returns a+b and false if the sum leaves the int64 range
func checkedAdd(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// checkedSub returns a-b and false if the difference leaves the int64 range
func checkedSub(a, b int64) (int64, bool) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

type walletDocument struct {
	Balance int64 `json:"balance" bson:"balance"`
}

func (w Wallet) MarshalJSON() ([]byte, error) {
	return json.Marshal(walletDocument{Balance: w.balance})
}

func (w *Wallet) UnmarshalJSON(data []byte) error {
	var doc walletDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	w.balance = doc.Balance
	return nil
}

func (w Wallet) MarshalBSON() ([]byte, error) {
	return bson.Marshal(walletDocument{Balance: w.balance})
}

func (w *Wallet) UnmarshalBSON(data []byte) error {
	var doc walletDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	w.balance = doc.Balance
	return nil
}
