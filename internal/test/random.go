package test

import (
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

// RandomAccount returns random account owned by the given owner.
func RandomAccount(ownerID int64) domain.Account {
	return domain.Account{
		ID:        randompkg.IntBetween(1, 100),
		Number:    randompkg.AccountNumber(),
		OwnerID:   ownerID,
		Balance:   randompkg.MoneyAmountBetween(1000, 10_000),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomUser returns random user without a password hash.
func RandomUser() domain.User {
	return domain.User{
		ID:        randompkg.IntBetween(1, 100),
		Username:  randompkg.Owner(),
		FullName:  randompkg.String(10),
		Email:     randompkg.Email(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}
