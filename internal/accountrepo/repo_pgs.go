// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.OwnerID,
		&a.Balance,
		&a.CreatedAt,
	)

	return a, err
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, number, owner_id, balance, created_at
`

// AddBalance changes the account's balance and returns the changed account.
//
// The increment is computed by Postgres while it holds the row lock,
// so concurrent calls for one account are serialized and none is lost.
func (r *RepoPGS) AddBalance(ctx context.Context, amount decimal.Decimal, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, amount, id))
	if err != nil {
		l.Error().Err(err).Int64("account_id", id).Send()

		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.Account{}, domain.ErrAccountNotFound
		case dbpkg.IsRetryable(err):
			return domain.Account{}, domain.ErrConcurrencyConflict
		case dbpkg.IsOutOfRange(err):
			return domain.Account{}, domain.ErrInvalidAmount
		case dbpkg.ConstraintName(err) == "accounts_balance_check":
			return domain.Account{}, domain.ErrNegativeBalance
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const createQuery = `
INSERT INTO
    accounts (number, owner_id, balance)
VALUES
    ($1, $2, $3)
RETURNING id, number, owner_id, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, number string, ownerID int64, balance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, createQuery, number, ownerID, balance))
	if err != nil {
		l.Error().Err(err).Send()

		switch dbpkg.ConstraintName(err) {
		case "accounts_owner_id_fkey":
			return domain.Account{}, domain.ErrOwnerNotFound
		case "accounts_number_key":
			return domain.Account{}, domain.ErrAccountNumberAlreadyExists
		case "accounts_balance_check":
			return domain.Account{}, domain.ErrNegativeBalance
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT 
	id, number, owner_id, balance, created_at 
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Int64("account_id", id).Send()
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT 
	id, number, owner_id, balance, created_at 
FROM accounts
WHERE number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getByNumberQuery, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Str("account_number", number).Send()
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}
