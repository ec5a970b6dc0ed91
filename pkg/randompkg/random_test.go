package randompkg

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIntBetween(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := IntBetween(5, 10)
		if got < 5 || got > 10 {
			t.Fatalf("IntBetween(5, 10) = %d, want value in [5, 10]", got)
		}
	}
}

func TestAccountNumber(t *testing.T) {
	got := AccountNumber()

	if len(got) != 10 {
		t.Fatalf("len(AccountNumber()) = %d, want 10", len(got))
	}

	if strings.Trim(got, digits) != "" {
		t.Errorf("AccountNumber() = %q, want only digits", got)
	}
}

func TestMoneyAmountBetween(t *testing.T) {
	min, max := decimal.NewFromInt(100), decimal.NewFromInt(1000)

	for i := 0; i < 100; i++ {
		got := MoneyAmountBetween(100, 1000)
		if got.LessThan(min) || got.GreaterThan(max) {
			t.Fatalf("MoneyAmountBetween(100, 1000) = %v, want value in [100, 1000]", got)
		}

		if got.Exponent() < -2 {
			t.Fatalf("MoneyAmountBetween(100, 1000) = %v, want at most 2 decimals", got)
		}
	}
}
