//go:build integration

package userrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/internal/userrepo"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

func randomUserParams(t *testing.T) domain.CreateUserParams {
	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	return domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}
}

func TestCreate(t *testing.T) {
	config := integrationtest.LoadConfig(t)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
	repo := userrepo.NewRepoPGS(tx)

	arg := randomUserParams(t)

	user, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)

	require.NotZero(t, user.ID)
	require.Equal(t, arg.Username, user.Username)
	require.Equal(t, arg.HashedPassword, user.HashedPassword)
	require.Equal(t, arg.FullName, user.FullName)
	require.Equal(t, arg.Email, user.Email)
	require.WithinDuration(t, time.Now(), user.CreatedAt, time.Second)
}

func TestCreateUniqueViolations(t *testing.T) {
	config := integrationtest.LoadConfig(t)

	testCases := []struct {
		name    string
		modify  func(existing domain.User, arg *domain.CreateUserParams)
		wantErr error
	}{
		{
			name: "UsernameAlreadyExists",
			modify: func(existing domain.User, arg *domain.CreateUserParams) {
				arg.Username = existing.Username
			},
			wantErr: domain.ErrUsernameAlreadyExists,
		},
		{
			name: "EmailAlreadyExists",
			modify: func(existing domain.User, arg *domain.CreateUserParams) {
				arg.Email = existing.Email
			},
			wantErr: domain.ErrEmailAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
			repo := userrepo.NewRepoPGS(tx)

			existing, err := repo.Create(context.Background(), randomUserParams(t))
			require.NoError(t, err)

			arg := randomUserParams(t)
			tc.modify(existing, &arg)

			user, err := repo.Create(context.Background(), arg)
			require.ErrorIs(t, err, tc.wantErr)
			require.Empty(t, user)
		})
	}
}

func TestGet(t *testing.T) {
	config := integrationtest.LoadConfig(t)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
	repo := userrepo.NewRepoPGS(tx)

	want, err := repo.Create(context.Background(), randomUserParams(t))
	require.NoError(t, err)

	t.Run("ByID", func(t *testing.T) {
		got, err := repo.Get(context.Background(), want.ID)
		require.NoError(t, err)
		require.Equal(t, want.Username, got.Username)
		require.Equal(t, want.HashedPassword, got.HashedPassword)
		require.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("ByUsername", func(t *testing.T) {
		got, err := repo.GetByUsername(context.Background(), want.Username)
		require.NoError(t, err)
		require.Equal(t, want.ID, got.ID)
		require.Equal(t, want.Email, got.Email)
	})

	t.Run("IDNotFound", func(t *testing.T) {
		got, err := repo.Get(context.Background(), want.ID+1_000_000)
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Empty(t, got)
	})

	t.Run("UsernameNotFound", func(t *testing.T) {
		got, err := repo.GetByUsername(context.Background(), "nosuchuser")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Empty(t, got)
	})
}
