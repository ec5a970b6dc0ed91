//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
)

func newTokenMaker(t *testing.T) tokenpkg.Maker {
	t.Helper()

	tokenMaker, err := tokenpkg.New(server.Config.TokenType, server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.New() returned error: %v", err)
	}

	return tokenMaker
}

func authAs(t *testing.T, user domain.User) func(r *http.Request) {
	t.Helper()

	tokenMaker := newTokenMaker(t)

	return func(r *http.Request) {
		err := middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer,
			user.ID, user.Username, server.Config.AccessTokenDuration)
		if err != nil {
			t.Fatalf("middleware.AddAuthorization() returned error: %v", err)
		}
	}
}

func noAuth(r *http.Request) {}

func send(t *testing.T, method, url string, body any, auth func(r *http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	auth(req)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}
