package wallet

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewWallet(t *testing.T) {
	for _, balance := range []int64{math.MinInt64, -5, 0, 100, math.MaxInt64} {
		w := NewWallet(balance)
		assert.Equal(t, balance, w.Balance())
	}
}

func TestWallet_AddCoins(t *testing.T) {
	t.Run("SuccessfulFromNegative", func(t *testing.T) {
		w := NewWallet(-5)
		require.NoError(t, w.AddCoins(100))
		assert.Equal(t, int64(95), w.Balance())
	})

	t.Run("SuccessfulUpToMax", func(t *testing.T) {
		w := NewWallet(math.MaxInt64 - 10)
		require.NoError(t, w.AddCoins(10))
		assert.Equal(t, int64(math.MaxInt64), w.Balance())
	})

	t.Run("SuccessfulMaxAmount", func(t *testing.T) {
		w := NewWallet(0)
		require.NoError(t, w.AddCoins(math.MaxUint32))
		assert.Equal(t, int64(math.MaxUint32), w.Balance())
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		for _, balance := range []int64{math.MinInt64, -1, 0, 1, math.MaxInt64} {
			w := NewWallet(balance)
			err := w.AddCoins(0)
			assert.Equal(t, AddZeroCoinError{}, err)
			assert.Equal(t, balance, w.Balance(), "balance must not change on error")
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		w := NewWallet(math.MaxInt64)
		err := w.AddCoins(10)

		assert.Equal(t, AddCoinOverflowError{CurrentAmount: math.MaxInt64, AddedAmount: 10}, err)
		assert.Equal(t, int64(math.MaxInt64), w.Balance(), "balance must not change on error")
	})

	t.Run("OverflowByOne", func(t *testing.T) {
		w := NewWallet(math.MaxInt64 - 9)
		err := w.AddCoins(10)

		var overflow AddCoinOverflowError
		require.ErrorAs(t, err, &overflow)
		assert.Equal(t, int64(math.MaxInt64-9), overflow.CurrentAmount)
		assert.Equal(t, uint32(10), overflow.AddedAmount)
	})
}

func TestWallet_RemoveCoins(t *testing.T) {
	t.Run("Successful", func(t *testing.T) {
		w := NewWallet(100)
		require.NoError(t, w.RemoveCoins(50, false))
		assert.Equal(t, int64(50), w.Balance())

		require.NoError(t, w.RemoveCoins(50, true))
		assert.Equal(t, int64(0), w.Balance())
	})

	t.Run("SuccessfulToExactlyZeroWithoutNegative", func(t *testing.T) {
		w := NewWallet(10)
		require.NoError(t, w.RemoveCoins(10, false))
		assert.Equal(t, int64(0), w.Balance())
	})

	t.Run("SuccessfulFromNegative", func(t *testing.T) {
		w := NewWallet(-5)
		require.NoError(t, w.RemoveCoins(50, true))
		assert.Equal(t, int64(-55), w.Balance())
	})

	t.Run("SuccessfulDownToMin", func(t *testing.T) {
		w := NewWallet(math.MinInt64 + 10)
		require.NoError(t, w.RemoveCoins(10, true))
		assert.Equal(t, int64(math.MinInt64), w.Balance())
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		for _, allowNegative := range []bool{false, true} {
			w := NewWallet(100)
			err := w.RemoveCoins(0, allowNegative)
			assert.Equal(t, RemoveZeroCoinError{}, err)
			assert.Equal(t, int64(100), w.Balance())
		}
	})

	t.Run("NegativeBalanceNotAllowed", func(t *testing.T) {
		w := NewWallet(0)
		err := w.RemoveCoins(10, false)

		assert.Equal(t, RemoveCoinNegativeBalanceError{
			CurrentAmount:          0,
			RemovedAmount:          10,
			NegativeBalanceAllowed: false,
		}, err)
		assert.Equal(t, int64(0), w.Balance())
	})

	t.Run("AlreadyNegativeNotAllowed", func(t *testing.T) {
		w := NewWallet(-5)
		err := w.RemoveCoins(1, false)

		assert.ErrorIs(t, err, RemoveCoinNegativeBalanceError{CurrentAmount: -5, RemovedAmount: 1})
		assert.Equal(t, int64(-5), w.Balance())
	})

	t.Run("Overflow", func(t *testing.T) {
		for _, allowNegative := range []bool{true, false} {
			w := NewWallet(math.MinInt64)
			err := w.RemoveCoins(10, allowNegative)

			assert.Equal(t, RemoveCoinOverflowError{CurrentAmount: math.MinInt64, RemovedAmount: 10}, err)
			assert.Equal(t, int64(math.MinInt64), w.Balance())
		}
	})
}

func TestWallet_FailedOperationsNeverMutate(t *testing.T) {
	testCases := []struct {
		name    string
		balance int64
		op      func(w *Wallet) error
	}{
		{"AddZero", 42, func(w *Wallet) error { return w.AddCoins(0) }},
		{"AddOverflow", math.MaxInt64, func(w *Wallet) error { return w.AddCoins(1) }},
		{"RemoveZero", 42, func(w *Wallet) error { return w.RemoveCoins(0, true) }},
		{"RemoveOverflow", math.MinInt64, func(w *Wallet) error { return w.RemoveCoins(1, true) }},
		{"RemoveNegative", 42, func(w *Wallet) error { return w.RemoveCoins(43, false) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWallet(tc.balance)
			err := tc.op(&w)

			var walletErr Error
			require.ErrorAs(t, err, &walletErr)
			assert.Equal(t, tc.balance, w.Balance())
		})
	}
}

func TestWallet_CopiesAreIndependent(t *testing.T) {
	original := NewWallet(10)
	clone := original

	require.NoError(t, clone.AddCoins(5))
	assert.Equal(t, int64(10), original.Balance())
	assert.Equal(t, int64(15), clone.Balance())
}

func TestWallet_JSON(t *testing.T) {
	data, err := json.Marshal(NewWallet(-7))
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":-7}`, string(data))

	var decoded Wallet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(-7), decoded.Balance())
}

func TestWallet_BSON(t *testing.T) {
	data, err := bson.Marshal(NewWallet(math.MinInt64))
	require.NoError(t, err)

	balance, err := bson.Raw(data).LookupErr("balance")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), balance.Int64())

	var decoded Wallet
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.Equal(t, int64(math.MinInt64), decoded.Balance())
}
