package depositservice

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Payload keys of a deposit request.
const (
	KeyAccountNumber = "account_number"
	KeyAmount        = "amount"
)

// DefaultMinAmount is the smallest accepted deposit.
var DefaultMinAmount = decimal.NewFromInt(100)

var errNotNumber = errors.New("not a number")

// ParseRequest validates a raw deposit payload and normalizes it.
//
// The checks run in a fixed order: required keys, amount is a number,
// amount is not below minAmount, account number is a string.
// An amount equal to minAmount is accepted.
func ParseRequest(payload map[string]any, minAmount decimal.Decimal) (domain.DepositRequest, error) {
	rawNumber, hasNumber := payload[KeyAccountNumber]
	rawAmount, hasAmount := payload[KeyAmount]

	if !hasNumber || !hasAmount {
		return domain.DepositRequest{}, domain.ErrMissingFields
	}

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return domain.DepositRequest{}, domain.ErrAmountNotNumber
	}

	if amount.LessThan(minAmount) {
		return domain.DepositRequest{}, domain.ErrAmountBelowMinimum
	}

	number, ok := rawNumber.(string)
	if !ok {
		return domain.DepositRequest{}, domain.ErrAccountNumberEmpty
	}

	return domain.DepositRequest{
		AccountNumber: number,
		Amount:        amount,
	}, nil
}

func parseAmount(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(a))
	case json.Number:
		return decimal.NewFromString(a.String())
	case float64:
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return decimal.Decimal{}, errNotNumber
		}
		return decimal.NewFromFloat(a), nil
	case float32:
		return parseAmount(float64(a))
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int32:
		return decimal.NewFromInt32(a), nil
	case int64:
		return decimal.NewFromInt(a), nil
	}

	return decimal.Decimal{}, errNotNumber
}
