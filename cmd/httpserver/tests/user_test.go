//go:build integration

package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/internal/test"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/go-petr/pet-ledger/pkg/web"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	seeded := test.SeedUser(t, server.DB)

	username := randompkg.Owner()
	email := randompkg.Email()

	testCases := []struct {
		name           string
		body           gin.H
		wantStatusCode int
		wantMessage    string
	}{
		{
			name: "OK",
			body: gin.H{
				"username":  username,
				"password":  randompkg.String(10),
				"full_name": randompkg.String(10),
				"email":     email,
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "UsernameAlreadyExists",
			body: gin.H{
				"username":  seeded.Username,
				"password":  randompkg.String(10),
				"full_name": randompkg.String(10),
				"email":     randompkg.Email(),
			},
			wantStatusCode: http.StatusConflict,
			wantMessage:    domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name: "EmailAlreadyExists",
			body: gin.H{
				"username":  randompkg.Owner(),
				"password":  randompkg.String(10),
				"full_name": randompkg.String(10),
				"email":     seeded.Email,
			},
			wantStatusCode: http.StatusConflict,
			wantMessage:    domain.ErrEmailAlreadyExists.Error(),
		},
		{
			name: "MissingFullName",
			body: gin.H{
				"username": randompkg.Owner(),
				"password": randompkg.String(10),
				"email":    randompkg.Email(),
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "FullName field is required",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			recorder := send(t, http.MethodPost, "/users", tc.body, noAuth)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantMessage != "" {
				res := web.Response{Data: &web.Message{}}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
				require.Equal(t, tc.wantMessage, res.Data.(*web.Message).Message)

				return
			}

			res := web.Response{Data: &struct {
				User domain.UserWithoutPassword `json:"user"`
			}{}}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, web.StatusSuccess, res.Status)

			got := res.Data.(*struct {
				User domain.UserWithoutPassword `json:"user"`
			}).User
			require.NotZero(t, got.ID)
			require.Equal(t, username, got.Username)
			require.Equal(t, email, got.Email)
			require.WithinDuration(t, time.Now(), got.CreatedAt, 2*time.Second)
		})
	}
}

func TestLoginUserAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user, password := test.SeedUserWithPassword(t, server.DB)

	testCases := []struct {
		name           string
		body           gin.H
		wantStatusCode int
	}{
		{
			name:           "OK",
			body:           gin.H{"username": user.Username, "password": password},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "WrongPassword",
			body:           gin.H{"username": user.Username, "password": password + "x"},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "UserNotFound",
			body:           gin.H{"username": "nosuchuser", "password": password},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			recorder := send(t, http.MethodPost, "/users/login", tc.body, noAuth)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			type loginData struct {
				AccessToken string                     `json:"access_token"`
				User        domain.UserWithoutPassword `json:"user"`
			}

			res := web.Response{Data: &loginData{}}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

			got := res.Data.(*loginData)
			require.Equal(t, user.ID, got.User.ID)

			payload, err := newTokenMaker(t).VerifyToken(got.AccessToken)
			require.NoError(t, err)
			require.Equal(t, user.ID, payload.UserID)
		})
	}
}
