// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/accountservice"
	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/pkg/errorspkg"
	"github.com/corebank/miniledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, req accountservice.OpenRequest) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	Close(ctx context.Context, id uuid.UUID) (domain.Account, error)
}

// Lister provides transaction listing needed by the passbook-style endpoint.
type Lister interface {
	List(ctx context.Context, accountID uuid.UUID, pageSize, pageID int32) ([]domain.Transaction, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service      Service
	transactions Lister
}

// NewHandler returns account handler.
func NewHandler(as Service, tl Lister) *Handler {
	return &Handler{service: as, transactions: tl}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data,omitempty"`
}

type openRequest struct {
	AccountName    string `json:"account_name" binding:"required"`
	Currency       string `json:"currency" binding:"required,len=3"`
	InitialDeposit string `json:"initial_deposit"`
	CreatedBy      string `json:"created_by"`
}

// Open handles http request to open an account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	initialDeposit := decimal.Zero

	if req.InitialDeposit != "" {
		var err error

		initialDeposit, err = decimal.NewFromString(req.InitialDeposit)
		if err != nil {
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
			return
		}
	}

	account, err := h.service.Open(ctx, accountservice.OpenRequest{
		AccountName:    req.AccountName,
		Currency:       req.Currency,
		InitialDeposit: initialDeposit,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrAccountNumberTaken),
			errors.Is(err, domain.ErrSequenceConflict):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusCreated, accountResponse{Data: accountData{account}})
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func bindAccountID(gctx *gin.Context) (uuid.UUID, bool) {
	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return uuid.Nil, false
	}

	return id, true
}

// Get handles http request to get an account by id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindAccountID(gctx)
	if !ok {
		return
	}

	account, err := h.service.Get(ctx, id)
	if err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

// Close handles http request to close an account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindAccountID(gctx)
	if !ok {
		return
	}

	account, err := h.service.Close(ctx, id)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrAccountAlreadyClosed),
			errors.Is(err, domain.ErrNonZeroBalance):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type transactionsResponse struct {
	Data transactionsData `json:"data,omitempty"`
}

// ListTransactions handles http request to list an account's ledger rows.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindAccountID(gctx)
	if !ok {
		return
	}

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	if _, err := h.service.Get(ctx, id); err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	items, err := h.transactions.List(ctx, id, req.PageSize, req.PageID)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, transactionsResponse{Data: transactionsData{items}})
}
