// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberAlreadyExists indicates an account number collision.
	ErrAccountNumberAlreadyExists = errors.New("account number already exists")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountOwnerMismatch indicates that the account belongs to another user.
	ErrAccountOwnerMismatch = errors.New("account doesn't belong to the authenticated user")
	// ErrNegativeBalance indicates that a balance change would drop the balance below zero.
	ErrNegativeBalance = errors.New("balance cannot be negative")
)

// Account holds a user balance addressed by an account number.
type Account struct {
	ID        int64           `json:"id"`
	Number    string          `json:"account_number"`
	OwnerID   int64           `json:"owner_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}
