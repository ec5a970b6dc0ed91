//go:build integration

package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/test"
	"github.com/go-petr/pet-ledger/pkg/web"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type accountData struct {
	Account domain.Account `json:"account"`
}

func TestCreateAccountAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	ghost := domain.User{ID: user.ID + 1_000_000, Username: "ghost"}

	t.Run("OK", func(t *testing.T) {
		recorder := send(t, http.MethodPost, "/accounts", nil, authAs(t, user))
		require.Equal(t, http.StatusCreated, recorder.Code)

		res := web.Response{Data: &accountData{}}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

		got := res.Data.(*accountData).Account
		require.NotZero(t, got.ID)
		require.Len(t, got.Number, 10)
		require.Equal(t, user.ID, got.OwnerID)
		require.True(t, got.Balance.IsZero())
	})

	t.Run("OwnerNotFound", func(t *testing.T) {
		recorder := send(t, http.MethodPost, "/accounts", nil, authAs(t, ghost))
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("NoAuthorization", func(t *testing.T) {
		recorder := send(t, http.MethodPost, "/accounts", nil, noAuth)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)

		res := web.Response{Data: &web.Message{}}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, middleware.ErrAuthHeaderNotFound.Error(), res.Data.(*web.Message).Message)
	})
}

func TestGetAccountAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	owner := test.SeedUser(t, server.DB)
	stranger := test.SeedUser(t, server.DB)
	account := test.SeedAccount(t, server.DB, owner.ID, decimal.RequireFromString("500.00"))

	testCases := []struct {
		name           string
		number         string
		as             domain.User
		wantStatusCode int
	}{
		{name: "OK", number: account.Number, as: owner, wantStatusCode: http.StatusOK},
		{name: "OwnerMismatch", number: account.Number, as: stranger, wantStatusCode: http.StatusUnauthorized},
		{name: "NotFound", number: "0000000000", as: owner, wantStatusCode: http.StatusNotFound},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			recorder := send(t, http.MethodGet, "/accounts/"+tc.number, nil, authAs(t, tc.as))
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			res := web.Response{Data: &accountData{}}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

			got := res.Data.(*accountData).Account
			require.Equal(t, account.ID, got.ID)
			require.True(t, account.Balance.Equal(got.Balance))
		})
	}
}
