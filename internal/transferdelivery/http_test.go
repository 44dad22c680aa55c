package transferdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transactiondelivery"
	"github.com/corebank/miniledger/internal/transferservice"
	"github.com/corebank/miniledger/pkg/errorspkg"
	"github.com/corebank/miniledger/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	sourceAccountID := uuid.New()
	destinationAccountNumber := randompkg.AccountNumber()
	amount := "100.50"

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("channel", transactiondelivery.ValidChannel); err != nil {
			t.Fatalf("RegisterValidation(channel) returned error: %v", err)
		}
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferService := NewMockService(ctrl)
	handler := NewHandler(transferService)

	server := gin.New()
	url := "/transfers"
	server.POST(url, handler.Create)

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(transferService *MockService)
		wantStatusCode int
	}{
		{
			name: "InvalidBindSourceAccountID",
			requestBody: gin.H{
				"source_account_id":          "not-a-uuid",
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "MissingDestination",
			requestBody: gin.H{
				"source_account_id": sourceAccountID.String(),
				"amount":            amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InvalidAmount",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     "one hundred",
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "UnknownChannel",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
				"channel":                    "CARRIER_PIGEON",
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "SourceNotFound",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "SelfTransfer",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrSelfTransfer)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InsufficientBalance",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ConcurrencyConflict",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrConcurrencyConflict)
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "InternalError",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
			},
			buildStubs: func(transferService *MockService) {
				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name: "OK",
			requestBody: gin.H{
				"source_account_id":          sourceAccountID.String(),
				"destination_account_number": destinationAccountNumber,
				"amount":                     amount,
				"description":                "rent",
				"channel":                    "ONLINE",
				"requested_by":               "teller-7",
			},
			buildStubs: func(transferService *MockService) {
				arg := transferservice.TransferRequest{
					SourceAccountID:          sourceAccountID,
					DestinationAccountNumber: destinationAccountNumber,
					Amount:                   decimal.RequireFromString(amount),
					Description:              "rent",
					Channel:                  domain.ChannelOnline,
					RequestedBy:              "teller-7",
				}

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{}, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs(transferService)

			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}
