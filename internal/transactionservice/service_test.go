package transactionservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transferservice"
	"github.com/corebank/miniledger/pkg/errorspkg"
	"github.com/corebank/miniledger/pkg/randompkg"
)

func testAccount(balance string, status domain.AccountStatus) domain.Account {
	return domain.Account{
		ID:            uuid.New(),
		AccountNumber: randompkg.AccountNumber(),
		AccountName:   randompkg.Owner(),
		Currency:      "IDR",
		Balance:       decimal.RequireFromString(balance),
		Status:        status,
	}
}

func TestDeposit(t *testing.T) {
	account := testAccount("1000", domain.StatusActive)
	frozen := testAccount("1000", domain.StatusFrozen)

	testCases := []struct {
		name          string
		req           MovementRequest
		buildStubs    func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer)
		checkResponse func(t *testing.T, txn domain.Transaction, err error)
	}{
		{
			name: "ZeroAmount",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.Zero,
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "AccountNotFound",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("100"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "AccountNotActive",
			req: MovementRequest{
				AccountID: frozen.ID,
				Amount:    decimal.RequireFromString("100"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(frozen, nil)
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotActive)
				require.Contains(t, err.Error(), string(domain.StatusFrozen))
			},
		},
		{
			name: "SequenceError",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("100"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
				sequence.EXPECT().
					Next(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return("", errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "OKDefaults",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("100.25"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
				sequence.EXPECT().
					Next(gomock.Any(),
						gomock.Eq(transferservice.TransactionNumberSequence),
						gomock.Eq(transferservice.TransactionNumberPrefix)).
					Times(1).
					Return("TXN0000010", nil)

				arg := domain.DepositParams{
					AccountID:         account.ID,
					TransactionNumber: "TXN0000010",
					Amount:            decimal.RequireFromString("100.25"),
					Description:       "Cash Deposit",
					Channel:           domain.ChannelTeller,
					CreatedBy:         "SYSTEM",
				}

				repo.EXPECT().
					DepositTx(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.Transaction{TransactionNumber: "TXN0000010"}, nil)
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, "TXN0000010", txn.TransactionNumber)
			},
		},
		{
			name: "OKExplicitFields",
			req: MovementRequest{
				AccountID:   account.ID,
				Amount:      decimal.RequireFromString("50"),
				Description: "payroll",
				Channel:     domain.ChannelATM,
				CreatedBy:   "teller-3",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
				sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return("TXN0000011", nil)

				repo.EXPECT().
					DepositTx(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.DepositParams) (domain.Transaction, error) {
						require.Equal(t, "payroll", arg.Description)
						require.Equal(t, domain.ChannelATM, arg.Channel)
						require.Equal(t, "teller-3", arg.CreatedBy)
						return domain.Transaction{}, nil
					})
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.NoError(t, err)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accounts := NewMockAccountReader(ctrl)
			sequence := NewMockSequencer(ctrl)
			tc.buildStubs(repo, accounts, sequence)

			txn, err := New(repo, accounts, sequence).Deposit(context.Background(), tc.req)
			tc.checkResponse(t, txn, err)
		})
	}
}

func TestWithdraw(t *testing.T) {
	account := testAccount("500.00", domain.StatusActive)

	testCases := []struct {
		name          string
		req           MovementRequest
		buildStubs    func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer)
		checkResponse func(t *testing.T, txn domain.Transaction, err error)
	}{
		{
			name: "NegativeAmount",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("-1"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "InsufficientBalance",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("500.01"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
				require.Contains(t, err.Error(), "Available: 500.00")
			},
		},
		{
			name: "FullBalance",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("500.00"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
				sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return("TXN0000020", nil)

				repo.EXPECT().
					WithdrawTx(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.WithdrawParams) (domain.Transaction, error) {
						require.True(t, arg.Amount.Equal(decimal.RequireFromString("500.00")))
						require.Equal(t, "Cash Withdrawal", arg.Description)
						return domain.Transaction{TransactionNumber: arg.TransactionNumber}, nil
					})
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, "TXN0000020", txn.TransactionNumber)
			},
		},
		{
			name: "RepoError",
			req: MovementRequest{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("10"),
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountReader, sequence *MockSequencer) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
				sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return("TXN0000021", nil)
				repo.EXPECT().
					WithdrawTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, domain.ErrConcurrencyConflict)
			},
			checkResponse: func(t *testing.T, txn domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accounts := NewMockAccountReader(ctrl)
			sequence := NewMockSequencer(ctrl)
			tc.buildStubs(repo, accounts, sequence)

			txn, err := New(repo, accounts, sequence).Withdraw(context.Background(), tc.req)
			tc.checkResponse(t, txn, err)
		})
	}
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountReader(ctrl)
	sequence := NewMockSequencer(ctrl)

	accountID := uuid.New()
	want := []domain.Transaction{
		{TransactionNumber: "TXN0000031"},
		{TransactionNumber: "TXN0000030"},
	}

	repo.EXPECT().
		ListByAccount(gomock.Any(), gomock.Eq(accountID), gomock.Eq(int32(10)), gomock.Eq(int32(20))).
		Times(1).
		Return(want, nil)

	got, err := New(repo, accounts, sequence).List(context.Background(), accountID, 10, 3)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestListFirstPageFloor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountReader(ctrl)
	sequence := NewMockSequencer(ctrl)

	accountID := uuid.New()

	// Page ids below one read the first page rather than a negative offset.
	repo.EXPECT().
		ListByAccount(gomock.Any(), gomock.Eq(accountID), gomock.Eq(int32(10)), gomock.Eq(int32(0))).
		Times(1).
		Return([]domain.Transaction{}, nil)

	_, err := New(repo, accounts, sequence).List(context.Background(), accountID, 10, 0)
	require.NoError(t, err)
}
