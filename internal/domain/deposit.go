package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Deposit request errors. Their messages are part of the API.
var (
	// ErrMissingFields indicates that account_number or amount is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrAmountNotNumber indicates that amount cannot be parsed as a number.
	ErrAmountNotNumber = errors.New("amount must be a number")
	// ErrAmountBelowMinimum indicates that amount is less than the minimum deposit.
	ErrAmountBelowMinimum = errors.New("amount below minimum")
	// ErrAccountNumberEmpty indicates that account_number is not a string.
	ErrAccountNumberEmpty = errors.New("account number cannot be empty")
	// ErrMalformedPayload indicates that the request body is not a JSON object.
	ErrMalformedPayload = errors.New("request body must be a JSON object")
)

// Deposit lookup and commit errors.
var (
	// ErrCallerNotFound indicates that the authenticated caller has no user record.
	ErrCallerNotFound = errors.New("user does not exist")
	// ErrAccountNumberNotFound indicates that no account has the requested number.
	ErrAccountNumberNotFound = errors.New("account number does not exist")
	// ErrConcurrencyConflict indicates that the account row could not be locked in time.
	ErrConcurrencyConflict = errors.New("deposit conflicted with a concurrent update, try again")
	// ErrInvalidAmount indicates that the store rejected the amount, e.g. a numeric overflow.
	ErrInvalidAmount = errors.New("invalid amount")
)

// DepositRequest is a validated and normalized deposit payload.
type DepositRequest struct {
	AccountNumber string
	Amount        decimal.Decimal
}

// CreateDepositParams is the input data for the deposit transaction.
type CreateDepositParams struct {
	AccountID int64
	Amount    decimal.Decimal
}

// DepositTxResult is the result of the deposit transaction.
type DepositTxResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}
