package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTransactionNotFound indicates that the ledger entry is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionKind is the direction of a ledger entry.
type TransactionKind string

// KindCredit increases the account balance.
const KindCredit TransactionKind = "credit"

// Transaction is an immutable ledger entry of one monetary movement.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"` // always positive
	CreatedAt time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to append a ledger entry.
type CreateTransactionParams struct {
	AccountID int64
	Kind      TransactionKind
	Amount    decimal.Decimal
}
