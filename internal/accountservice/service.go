// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxNumberAttempts bounds account number regeneration on collisions.
const maxNumberAttempts = 5

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, number string, ownerID int64, balance decimal.Decimal) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
}

// LedgerRepo provides ledger reads needed by account service layer.
type LedgerRepo interface {
	List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Transaction, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo       Repo
	ledgerRepo LedgerRepo
	newNumber  func() string
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, lr LedgerRepo) *Service {
	return &Service{
		repo:       ar,
		ledgerRepo: lr,
		newNumber:  randompkg.AccountNumber,
	}
}

// Create opens an account with zero balance and a fresh number for the given owner.
func (s *Service) Create(ctx context.Context, ownerID int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var err error

	for i := 0; i < maxNumberAttempts; i++ {
		var account domain.Account

		account, err = s.repo.Create(ctx, s.newNumber(), ownerID, decimal.Zero)
		if !errors.Is(err, domain.ErrAccountNumberAlreadyExists) {
			return account, err
		}

		l.Warn().Int("attempt", i+1).Msg("account number collision")
	}

	return domain.Account{}, err
}

// Get returns the account with the given number if it belongs to ownerID.
func (s *Service) Get(ctx context.Context, ownerID int64, number string) (domain.Account, error) {
	account, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	if account.OwnerID != ownerID {
		return domain.Account{}, domain.ErrAccountOwnerMismatch
	}

	return account, nil
}

// ListTransactions returns a page of ledger entries of the owner's account in commit order.
func (s *Service) ListTransactions(ctx context.Context, ownerID int64, number string, pageSize, pageID int32) ([]domain.Transaction, error) {
	account, err := s.Get(ctx, ownerID, number)
	if err != nil {
		return nil, err
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.ledgerRepo.List(ctx, account.ID, limit, offset)
}
