// Package depositrepo runs the deposit unit of work against Postgres.
package depositrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates deposit repository layer logic.
type RepoPGS struct {
	conn        *sql.DB
	lockTimeout time.Duration
}

// NewRepoPGS returns deposit RepoPGS with connection to start transactions.
//
// lockTimeout bounds how long a deposit waits for the account row lock, zero disables the bound.
func NewRepoPGS(conn *sql.DB, lockTimeout time.Duration) *RepoPGS {
	return &RepoPGS{
		conn:        conn,
		lockTimeout: lockTimeout,
	}
}

const setLockTimeoutQuery = `SELECT set_config('lock_timeout', $1, true)`

// Deposit credits the account and appends the ledger entry within a single db transaction.
//
// Either both writes are committed or neither is. A lock wait that exceeds the
// lock timeout returns domain.ErrConcurrencyConflict and leaves nothing applied.
func (r *RepoPGS) Deposit(ctx context.Context, arg domain.CreateDepositParams) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.DepositTxResult{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Msg("deposit rollback failed")
		}
	}()

	timeout := fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())
	if _, err := tx.ExecContext(ctx, setLockTimeoutQuery, timeout); err != nil {
		l.Error().Err(err).Send()
		return domain.DepositTxResult{}, errorspkg.ErrInternal
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	ledgerRepo := ledgerrepo.NewRepoPGS(tx)

	var result domain.DepositTxResult

	result.Account, err = accountRepo.AddBalance(ctx, arg.Amount, arg.AccountID)
	if err != nil {
		return domain.DepositTxResult{}, err
	}

	result.Transaction, err = ledgerRepo.Create(ctx, domain.CreateTransactionParams{
		AccountID: arg.AccountID,
		Kind:      domain.KindCredit,
		Amount:    arg.Amount,
	})
	if err != nil {
		return domain.DepositTxResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsRetryable(err) {
			return domain.DepositTxResult{}, domain.ErrConcurrencyConflict
		}

		return domain.DepositTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
