// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/userrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// SeedUser creates random User.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	user, _ := SeedUserWithPassword(t, db)

	return user
}

// SeedUserWithPassword creates random User and returns it with its plain password.
func SeedUserWithPassword(t *testing.T, db dbpkg.SQLInterface) (domain.User, string) {
	t.Helper()

	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%v) returned error: %v", password, err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user, password
}

// SeedAccount creates Account with a random number and the given balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, ownerID int64, balance decimal.Decimal) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)
	number := randompkg.AccountNumber()

	account, err := accountRepo.Create(context.Background(), number, ownerID, balance)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			number, ownerID, balance, err)
	}

	return account
}

// SeedTransaction appends a credit ledger entry without touching the balance.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, accountID int64, amount decimal.Decimal) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		AccountID: accountID,
		Kind:      domain.KindCredit,
		Amount:    amount,
	}

	transaction, err := ledgerrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("ledgerRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}
