// Package depositdelivery manages delivery layer of deposits.
package depositdelivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/depositservice"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// SuccessMessage accompanies every committed deposit.
const SuccessMessage = "Transaction succesfully completed"

// Service provides service layer interface needed by deposit delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package depositdelivery
type Service interface {
	Deposit(ctx context.Context, callerID int64, payload map[string]any) (domain.Transaction, error)
}

// Handler facilitates deposit delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns deposit handler.
func NewHandler(ds Service) *Handler {
	return &Handler{
		service: ds,
	}
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
	Message     string             `json:"message"`
}

// decodePayload reads a JSON object keeping numbers as json.Number,
// so an amount is never rounded through float64.
func decodePayload(r io.Reader) (map[string]any, error) {
	if r == nil {
		return nil, io.EOF
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// Create handles http request to deposit money into an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	payload, err := decodePayload(gctx.Request.Body)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Fail(domain.ErrMalformedPayload))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.Deposit(ctx, authPayload.UserID, payload)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrCallerNotFound),
			errors.Is(err, domain.ErrAccountNumberNotFound):
			gctx.JSON(http.StatusNotFound, web.Fail(err))
		case depositservice.IsClientError(err):
			gctx.JSON(http.StatusBadRequest, web.Fail(err))
		case errors.Is(err, domain.ErrConcurrencyConflict):
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusCreated, web.Success(data{
		Transaction: transaction,
		Message:     SuccessMessage,
	}))
}
