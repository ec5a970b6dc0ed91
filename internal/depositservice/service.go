// Package depositservice manages business logic layer of deposits.
package depositservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/metricspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides the atomic deposit unit of work.
//
//go:generate mockgen -source service.go -destination service_mock.go -package depositservice
type Repo interface {
	Deposit(ctx context.Context, arg domain.CreateDepositParams) (domain.DepositTxResult, error)
}

// AccountRepo provides account lookup needed by deposit service layer.
type AccountRepo interface {
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
}

// UserRepo provides caller lookup needed by deposit service layer.
type UserRepo interface {
	Get(ctx context.Context, id int64) (domain.User, error)
}

// Metrics records deposit outcomes.
type Metrics interface {
	ObserveDeposit(outcome string, elapsed time.Duration)
	ObserveRetry()
}

// Config holds deposit policy.
type Config struct {
	MinAmount    decimal.Decimal
	MaxRetries   int
	RetryBackoff time.Duration
}

// Service facilitates deposit service layer logic.
type Service struct {
	repo        Repo
	accountRepo AccountRepo
	userRepo    UserRepo
	metrics     Metrics
	config      Config
}

// New returns deposit service struct to manage deposit business logic.
func New(dr Repo, ar AccountRepo, ur UserRepo, m Metrics, c Config) *Service {
	return &Service{
		repo:        dr,
		accountRepo: ar,
		userRepo:    ur,
		metrics:     m,
		config:      c,
	}
}

// Deposit credits the account named in payload and returns the new ledger entry.
//
// The caller must exist but does not have to own the receiving account.
func (s *Service) Deposit(ctx context.Context, callerID int64, payload map[string]any) (domain.Transaction, error) {
	start := time.Now()

	t, err := s.deposit(ctx, callerID, payload)

	s.metrics.ObserveDeposit(outcome(err), time.Since(start))

	return t, err
}

func (s *Service) deposit(ctx context.Context, callerID int64, payload map[string]any) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	req, err := ParseRequest(payload, s.config.MinAmount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Transaction{}, err
	}

	if _, err := s.userRepo.Get(ctx, callerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			l.Info().Int64("caller_id", callerID).Err(err).Send()
			return domain.Transaction{}, domain.ErrCallerNotFound
		}

		return domain.Transaction{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, req.AccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Transaction{}, fmt.Errorf("%w (%s)", domain.ErrAccountNumberNotFound, req.AccountNumber)
		}

		return domain.Transaction{}, err
	}

	arg := domain.CreateDepositParams{
		AccountID: account.ID,
		Amount:    req.Amount,
	}

	result, err := s.commit(ctx, arg)
	if err != nil {
		return domain.Transaction{}, err
	}

	l.Info().
		Int64("caller_id", callerID).
		Int64("account_id", result.Account.ID).
		Int64("transaction_id", result.Transaction.ID).
		Str("amount", result.Transaction.Amount.String()).
		Msg("deposit committed")

	return result.Transaction, nil
}

// commit runs the deposit unit of work, retrying it on concurrency conflicts
// up to MaxRetries times with a linear backoff.
func (s *Service) commit(ctx context.Context, arg domain.CreateDepositParams) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	for attempt := 1; ; attempt++ {
		result, err := s.repo.Deposit(ctx, arg)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) || attempt > s.config.MaxRetries {
			return result, err
		}

		s.metrics.ObserveRetry()
		l.Warn().Err(err).Int("attempt", attempt).Int64("account_id", arg.AccountID).Msg("retrying deposit")

		timer := time.NewTimer(time.Duration(attempt) * s.config.RetryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.DepositTxResult{}, domain.ErrConcurrencyConflict
		case <-timer.C:
		}
	}
}

var clientErrors = []error{
	domain.ErrMissingFields,
	domain.ErrAmountNotNumber,
	domain.ErrAmountBelowMinimum,
	domain.ErrAccountNumberEmpty,
	domain.ErrCallerNotFound,
	domain.ErrAccountNumberNotFound,
	domain.ErrInvalidAmount,
}

// IsClientError reports whether err was caused by the request rather than the system.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metricspkg.OutcomeCommitted
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return metricspkg.OutcomeConflict
	case IsClientError(err):
		return metricspkg.OutcomeRejected
	}

	return metricspkg.OutcomeFailed
}
