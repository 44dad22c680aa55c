// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transferservice"
	"github.com/corebank/miniledger/pkg/errorspkg"
	"github.com/corebank/miniledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, req transferservice.TransferRequest) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type request struct {
	SourceAccountID          string `json:"source_account_id" binding:"required,uuid"`
	DestinationAccountNumber string `json:"destination_account_number" binding:"required"`
	Amount                   string `json:"amount" binding:"required"`
	Description              string `json:"description"`
	ReferenceNumber          string `json:"reference_number"`
	Channel                  string `json:"channel" binding:"omitempty,channel"`
	RequestedBy              string `json:"requested_by"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to transfer funds between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	sourceAccountID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	result, err := h.service.Transfer(ctx, transferservice.TransferRequest{
		SourceAccountID:          sourceAccountID,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   amount,
		Description:              req.Description,
		ReferenceNumber:          req.ReferenceNumber,
		Channel:                  domain.TransactionChannel(req.Channel),
		RequestedBy:              req.RequestedBy,
	})
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrSelfTransfer),
			errors.Is(err, domain.ErrInvalidAmount),
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

	gctx.JSON(http.StatusCreated, response{Data: data{result}})
}
