// Package demo builds a sample entity and transaction and writes their serialized form.
// It is the only caller of the domain packages in the binary.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/banana-coin-ledger/internal/config"
	"github.com/banana-coin-ledger/internal/domain/entity"
	"github.com/banana-coin-ledger/internal/domain/transaction"
	"github.com/banana-coin-ledger/internal/domain/wallet"
	"github.com/google/uuid"
)

var ErrAmountOutOfRange = errors.New("coin amount out of range")

// Result holds the records produced by a run
type Result struct {
	Entity      *entity.Entity
	Transaction transaction.Transaction
	Failures    []error // entity errors reported by wallet operations, in order
}

type Runner struct {
	logger  *slog.Logger
	cfg     *config.DemoConfig
	encoder Encoder
	newID   func() string
	now     func() time.Time
}

func NewRunner(logger *slog.Logger, cfg *config.DemoConfig, encoder Encoder) *Runner {
	return &Runner{
		logger:  logger,
		cfg:     cfg,
		encoder: encoder,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Run credits and debits a fresh entity, then records the debit as a transaction towards
// a second entity id. Wallet failures are logged and written to w; they do not stop the run.
// The transaction only describes the movement: the receiving side is never credited.
func (r *Runner) Run(ctx context.Context, w io.Writer) (*Result, error) {
	toAdd, err := coins(r.cfg.CoinsToAdd)
	if err != nil {
		return nil, err
	}
	toRemove, err := coins(r.cfg.CoinsToRemove)
	if err != nil {
		return nil, err
	}

	holder := entity.NewEntity(r.newID(), r.cfg.EntityName, wallet.NewWallet(r.cfg.InitialBalance))
	logger := r.logger.With("entity_id", holder.ID())
	logger.Info("Entity created", "name", holder.Name(), "balance", holder.Wallet().Balance())

	result := &Result{Entity: holder}
	clock := newTicker(r.now())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := holder.AddCoins(toAdd); err != nil {
		if err := r.reportFailure(w, logger, result, "add_coins", err); err != nil {
			return nil, err
		}
	} else {
		logger.Info("Coins added", "amount", toAdd, "balance", holder.Wallet().Balance())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counterpartID := r.newID()
	history := []transaction.State{transaction.Created(clock.next()), transaction.OnProcess(clock.next())}

	if err := holder.RemoveCoins(toRemove, r.cfg.AllowNegativeBalance); err != nil {
		history = append(history, transaction.Failed(clock.next()))
		if err := r.reportFailure(w, logger, result, "remove_coins", err); err != nil {
			return nil, err
		}
	} else {
		history = append(history, transaction.Completed(clock.next()))
		logger.Info("Coins removed", "amount", toRemove, "balance", holder.Wallet().Balance())
	}

	result.Transaction = transaction.NewTransaction(
		r.newID(),
		holder.ID(),
		counterpartID,
		toRemove,
		fmt.Sprintf("Moving %d coins from entity identified by '%s' to entity identified by '%s'.", toRemove, holder.ID(), counterpartID),
		history[len(history)-1],
		history,
	)
	logger.Info("Transaction recorded",
		"transaction_id", result.Transaction.ID(),
		"to_entity_id", counterpartID,
		"state", result.Transaction.CurrentState().String(),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.encoder.Encode(w, holder); err != nil {
		return nil, fmt.Errorf("failed to write entity: %w", err)
	}
	if err := r.encoder.Encode(w, result.Transaction); err != nil {
		return nil, fmt.Errorf("failed to write transaction: %w", err)
	}

	return result, nil
}

func (r *Runner) reportFailure(w io.Writer, logger *slog.Logger, result *Result, operation string, err error) error {
	result.Failures = append(result.Failures, err)

	attrs := []any{"operation", operation, "error", err.Error()}
	var walletErr wallet.Error
	if errors.As(err, &walletErr) {
		attrs = append(attrs, "kind", string(walletErr.Kind()))
	}
	logger.Warn("Wallet operation failed", attrs...)

	if encErr := r.encoder.Encode(w, err); encErr != nil {
		return fmt.Errorf("failed to write %s failure: %w", operation, encErr)
	}
	return nil
}

func coins(amount int64) (uint32, error) {
	if amount < 0 || amount > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrAmountOutOfRange, amount)
	}
	return uint32(amount), nil
}

// ticker hands out strictly increasing millisecond ticks starting at a wall-clock instant
type ticker struct {
	current uint64
}

func newTicker(start time.Time) *ticker {
	ms := start.UnixMilli()
	if ms < 0 {
		ms = 0
	}
	return &ticker{current: uint64(ms)}
}

func (t *ticker) next() uint64 {
	tick := t.current
	t.current++
	return tick
}
