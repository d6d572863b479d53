package transaction

import (
	"encoding/json"
	"testing"

	"github.com/banana-coin-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var constructors = map[StateKind]func(uint64) State{
	StateCreated:   Created,
	StateOnProcess: OnProcess,
	StateCompleted: Completed,
	StateFailed:    Failed,
	StateBlocked:   Blocked,
}

func TestState_Equality(t *testing.T) {
	t.Run("SameKindSameTimestamp", func(t *testing.T) {
		assert.True(t, Created(1) == Created(1))
		assert.True(t, OnProcess(2) == OnProcess(2))
		assert.True(t, Completed(3) == Completed(3))
		assert.True(t, Failed(4) == Failed(4))
		assert.True(t, Blocked(5).Equal(Blocked(5)))
	})

	t.Run("DifferentKind", func(t *testing.T) {
		assert.True(t, Created(1) != OnProcess(1))
		assert.True(t, OnProcess(2) != Completed(2))
		assert.True(t, Completed(3) != Failed(3))
		assert.True(t, Failed(4) != Blocked(4))
		assert.False(t, Blocked(5).Equal(Created(5)))
	})

	t.Run("DifferentTimestamp", func(t *testing.T) {
		assert.True(t, Created(1) != Created(2))
		assert.True(t, OnProcess(2) != OnProcess(3))
		assert.True(t, Completed(3) != Completed(4))
		assert.True(t, Failed(4) != Failed(5))
		assert.False(t, Blocked(5).Equal(Blocked(6)))
	})

	t.Run("EveryPairOfKinds", func(t *testing.T) {
		for kindA, newA := range constructors {
			for kindB, newB := range constructors {
				assert.Equal(t, kindA == kindB, newA(7) == newB(7), "%s vs %s", kindA, kindB)
			}
		}
	})
}

func TestNewState(t *testing.T) {
	t.Run("KnownKinds", func(t *testing.T) {
		for kind, constructor := range constructors {
			state, err := NewState(kind, 42)
			require.NoError(t, err)
			assert.Equal(t, constructor(42), state)
			assert.Equal(t, kind, state.Kind())
			assert.Equal(t, uint64(42), state.Timestamp())
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := NewState("Refunded", 42)
		assert.ErrorIs(t, err, shared.ErrUnknownVariant)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "OnProcess{timestamp: 4}", OnProcess(4).String())
}

func TestState_JSON(t *testing.T) {
	t.Run("TaggedRecord", func(t *testing.T) {
		data, err := json.Marshal(Created(1))
		require.NoError(t, err)
		assert.JSONEq(t, `{"Created":{"timestamp":1}}`, string(data))
	})

	t.Run("RoundTripEveryKind", func(t *testing.T) {
		for _, constructor := range constructors {
			original := constructor(18446744073709551615)
			data, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded State
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, original, decoded)
		}
	})

	t.Run("ZeroStateCannotBeEncoded", func(t *testing.T) {
		_, err := json.Marshal(State{})
		assert.ErrorIs(t, err, shared.ErrUnknownVariant)
	})

	t.Run("UnknownTag", func(t *testing.T) {
		var decoded State
		err := json.Unmarshal([]byte(`{"Refunded":{"timestamp":1}}`), &decoded)
		assert.ErrorIs(t, err, shared.ErrUnknownVariant)
	})

	t.Run("TimestampRequired", func(t *testing.T) {
		testCases := []struct {
			name string
			data string
		}{
			{"BareString", `"Completed"`},
			{"NullFields", `{"Created":null}`},
			{"EmptyFields", `{"OnProcess":{}}`},
			{"NullTimestamp", `{"Failed":{"timestamp":null}}`},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				decoded := Blocked(7)
				err := json.Unmarshal([]byte(tc.data), &decoded)
				assert.ErrorIs(t, err, shared.ErrMalformedVariant)
				assert.Equal(t, Blocked(7), decoded, "state must be left untouched")
			})
		}
	})
}

func TestState_BSON(t *testing.T) {
	for _, constructor := range constructors {
		original := constructor(1700000000)
		data, err := bson.Marshal(original)
		require.NoError(t, err)

		var decoded State
		require.NoError(t, bson.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	}

	t.Run("TimestampRequired", func(t *testing.T) {
		data, err := bson.Marshal(bson.D{{Key: "Created", Value: bson.D{}}})
		require.NoError(t, err)

		var decoded State
		assert.ErrorIs(t, bson.Unmarshal(data, &decoded), shared.ErrMalformedVariant)
	})
}
