// Package transactiondelivery manages delivery layer of deposits and withdrawals.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transactionservice"
	"github.com/corebank/miniledger/pkg/errorspkg"
	"github.com/corebank/miniledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, req transactionservice.MovementRequest) (domain.Transaction, error)
	Withdraw(ctx context.Context, req transactionservice.MovementRequest) (domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type request struct {
	AccountID       string `json:"account_id" binding:"required,uuid"`
	Amount          string `json:"amount" binding:"required"`
	Description     string `json:"description"`
	ReferenceNumber string `json:"reference_number"`
	Channel         string `json:"channel" binding:"omitempty,channel"`
	CreatedBy       string `json:"created_by"`
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Deposit handles http request to credit an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.handle(gctx, h.service.Deposit)
}

// Withdrawal handles http request to debit an account.
func (h *Handler) Withdrawal(gctx *gin.Context) {
	h.handle(gctx, h.service.Withdraw)
}

func (h *Handler) handle(gctx *gin.Context,
	op func(context.Context, transactionservice.MovementRequest) (domain.Transaction, error),
) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	txn, err := op(ctx, transactionservice.MovementRequest{
		AccountID:       accountID,
		Amount:          amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		Channel:         domain.TransactionChannel(req.Channel),
		CreatedBy:       req.CreatedBy,
	})
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrAccountNotActive),
			errors.Is(err, domain.ErrAccountClosed),
			errors.Is(err, domain.ErrInsufficientBalance):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrSequenceConflict),
			errors.Is(err, domain.ErrConcurrencyConflict):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{txn}})
}
