// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"errors"
	"strings"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// Service registers and authenticates the users who operate ledger accounts.
type Service struct {
	repo Repo
}

// New returns user service.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Public strips the password hash from u.
func Public(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail trims and lowercases an email so one mailbox maps to one user.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a bcrypt hash of the password.
func (s *Service) Register(ctx context.Context, arg domain.RegisterUserParams) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	hash, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Str("username", arg.Username).Msg("hashing password")
		return domain.UserWithoutPassword{}, errorspkg.ErrInternal
	}

	user, err := s.repo.Create(ctx, domain.CreateUserParams{
		Username:       arg.Username,
		HashedPassword: hash,
		FullName:       strings.TrimSpace(arg.FullName),
		Email:          NormalizeEmail(arg.Email),
	})
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	l.Info().Int64("user_id", user.ID).Msg("user registered")

	return Public(user), nil
}

// Authenticate returns the user when password matches the stored hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx).With().Str("username", username).Logger()

	user, err := s.repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		l.Info().Msg("login for unknown user")
		return domain.UserWithoutPassword{}, err
	case err != nil:
		return domain.UserWithoutPassword{}, err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Warn().Err(err).Msg("login with wrong password")
		return domain.UserWithoutPassword{}, domain.ErrWrongPassword
	}

	return Public(user), nil
}
