//go:build integration

package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-ledger/internal/depositdelivery"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/internal/test"
	"github.com/go-petr/pet-ledger/pkg/web"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type depositData struct {
	Transaction domain.Transaction `json:"transaction"`
	Message     string             `json:"message"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

func accountState(t *testing.T, owner domain.User, number string) (decimal.Decimal, []domain.Transaction) {
	t.Helper()

	recorder := send(t, http.MethodGet, "/accounts/"+number, nil, authAs(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code)

	accountRes := web.Response{Data: &accountData{}}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&accountRes))

	recorder = send(t, http.MethodGet, "/accounts/"+number+"/transactions?page_id=1&page_size=100", nil, authAs(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code)

	listRes := web.Response{Data: &transactionsData{}}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&listRes))

	return accountRes.Data.(*accountData).Account.Balance, listRes.Data.(*transactionsData).Transactions
}

func TestDepositAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	owner := test.SeedUser(t, server.DB)
	caller := test.SeedUser(t, server.DB)
	ghost := domain.User{ID: caller.ID + 1_000_000, Username: "ghost"}

	testCases := []struct {
		name           string
		as             domain.User
		body           func(number string) any
		wantStatusCode int
		wantMessage    string
		wantBalance    string
		wantEntries    int
	}{
		{
			name: "OK",
			as:   caller,
			body: func(number string) any {
				return gin.H{"account_number": number, "amount": "250"}
			},
			wantStatusCode: http.StatusCreated,
			wantBalance:    "750.00",
			wantEntries:    1,
		},
		{
			name: "NumericAmountAtMinimum",
			as:   owner,
			body: func(number string) any {
				return gin.H{"account_number": number, "amount": 100}
			},
			wantStatusCode: http.StatusCreated,
			wantBalance:    "600.00",
			wantEntries:    1,
		},
		{
			name: "LargeNumericAmountExact",
			as:   caller,
			body: func(number string) any {
				return `{"account_number":"` + number + `","amount":9007199254740993}`
			},
			wantStatusCode: http.StatusCreated,
			wantBalance:    "9007199254741493",
			wantEntries:    1,
		},
		{
			name: "FractionalCentsKept",
			as:   caller,
			body: func(number string) any {
				return `{"account_number":"` + number + `","amount":100.005}`
			},
			wantStatusCode: http.StatusCreated,
			wantBalance:    "600.005",
			wantEntries:    1,
		},
		{
			name: "BelowMinimum",
			as:   caller,
			body: func(number string) any {
				return gin.H{"account_number": number, "amount": "99.99"}
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "amount below minimum",
			wantBalance:    "500.00",
		},
		{
			name: "AmountNotNumber",
			as:   caller,
			body: func(number string) any {
				return gin.H{"account_number": number, "amount": "abc"}
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "amount must be a number",
			wantBalance:    "500.00",
		},
		{
			name: "MissingFields",
			as:   caller,
			body: func(number string) any {
				return gin.H{"account_number": number}
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "missing required fields",
			wantBalance:    "500.00",
		},
		{
			name: "MalformedBody",
			as:   caller,
			body: func(number string) any {
				return `{"account_number":`
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    domain.ErrMalformedPayload.Error(),
			wantBalance:    "500.00",
		},
		{
			name: "UnknownAccountNumber",
			as:   caller,
			body: func(number string) any {
				return gin.H{"account_number": "0000000000", "amount": "250"}
			},
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "account number does not exist (0000000000)",
			wantBalance:    "500.00",
		},
		{
			name: "CallerNotFound",
			as:   ghost,
			body: func(number string) any {
				return gin.H{"account_number": number, "amount": "250"}
			},
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "user does not exist",
			wantBalance:    "500.00",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			account := test.SeedAccount(t, server.DB, owner.ID, decimal.RequireFromString("500.00"))

			recorder := send(t, http.MethodPost, "/deposits", tc.body(account.Number), authAs(t, tc.as))
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantMessage != "" {
				res := web.Response{Data: &web.Message{}}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
				require.Equal(t, web.StatusFail, res.Status)
				require.Equal(t, tc.wantMessage, res.Data.(*web.Message).Message)
			} else {
				res := web.Response{Data: &depositData{}}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
				require.Equal(t, web.StatusSuccess, res.Status)

				got := res.Data.(*depositData)
				require.Equal(t, depositdelivery.SuccessMessage, got.Message)
				require.Equal(t, account.ID, got.Transaction.AccountID)
				require.Equal(t, domain.KindCredit, got.Transaction.Kind)
			}

			balance, entries := accountState(t, owner, account.Number)
			require.True(t, balance.Equal(decimal.RequireFromString(tc.wantBalance)),
				"balance = %v, want %v", balance, tc.wantBalance)
			require.Len(t, entries, tc.wantEntries)
		})
	}
}

func TestConcurrentDepositsAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	owner := test.SeedUser(t, server.DB)
	caller := test.SeedUser(t, server.DB)
	account := test.SeedAccount(t, server.DB, owner.ID, decimal.RequireFromString("500.00"))

	const n = 10

	var wg sync.WaitGroup

	codes := make([]int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			body := strings.NewReplacer("NUMBER", account.Number).
				Replace(`{"account_number":"NUMBER","amount":"100"}`)

			recorder := send(t, http.MethodPost, "/deposits", body, authAs(t, caller))
			codes[i] = recorder.Code
		}(i)
	}

	wg.Wait()

	committed := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			committed++
		}
	}

	balance, entries := accountState(t, owner, account.Number)

	want := decimal.RequireFromString("500.00").Add(decimal.NewFromInt(int64(100 * committed)))
	require.True(t, balance.Equal(want), "balance = %v, want %v", balance, want)
	require.Len(t, entries, committed)
	require.Equal(t, n, committed)
}
