package transactionrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/test"
	"github.com/corebank/miniledger/pkg/configpkg"
	"github.com/corebank/miniledger/pkg/randompkg"
)

var (
	testDB   *sql.DB
	testRepo *RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err = sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomTransaction(t *testing.T, account domain.Account) domain.Transaction {
	t.Helper()

	amount := randompkg.MoneyAmountBetween(100, 1_000)

	arg := domain.CreateTransactionParams{
		AccountID:         account.ID,
		TransactionNumber: randompkg.TransactionNumber(),
		TransactionType:   domain.TypeDeposit,
		Amount:            amount,
		Currency:          account.Currency,
		BalanceBefore:     account.Balance,
		BalanceAfter:      account.Balance.Add(amount),
		Description:       "Cash Deposit",
		Channel:           domain.ChannelTeller,
		CreatedBy:         "test",
	}

	txn, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, txn)

	require.Equal(t, arg.AccountID, txn.AccountID)
	require.Equal(t, arg.TransactionNumber, txn.TransactionNumber)
	require.Equal(t, arg.TransactionType, txn.TransactionType)
	require.True(t, arg.Amount.Equal(txn.Amount))
	require.True(t, arg.BalanceBefore.Equal(txn.BalanceBefore))
	require.True(t, arg.BalanceAfter.Equal(txn.BalanceAfter))
	require.Nil(t, txn.CounterpartyAccountID)

	require.NotEqual(t, uuid.Nil, txn.ID)
	require.NotZero(t, txn.TransactionDate)

	return txn
}

func TestCreate(t *testing.T) {
	account := test.SeedAccount(t, testDB)
	createRandomTransaction(t, account)
}

func TestCreateConstraintViolations(t *testing.T) {
	account := test.SeedAccount(t, testDB)
	existing := createRandomTransaction(t, account)

	base := domain.CreateTransactionParams{
		AccountID:         account.ID,
		TransactionNumber: randompkg.TransactionNumber(),
		TransactionType:   domain.TypeDeposit,
		Amount:            decimal.RequireFromString("100"),
		Currency:          account.Currency,
		BalanceBefore:     decimal.Zero,
		BalanceAfter:      decimal.RequireFromString("100"),
		Channel:           domain.ChannelTeller,
		CreatedBy:         "test",
	}

	testCases := []struct {
		name    string
		mutate  func(arg *domain.CreateTransactionParams)
		wantErr error
	}{
		{
			name: "DuplicateTransactionNumber",
			mutate: func(arg *domain.CreateTransactionParams) {
				arg.TransactionNumber = existing.TransactionNumber
			},
			wantErr: domain.ErrSequenceConflict,
		},
		{
			name: "UnknownAccount",
			mutate: func(arg *domain.CreateTransactionParams) {
				arg.AccountID = uuid.New()
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "NonPositiveAmount",
			mutate: func(arg *domain.CreateTransactionParams) {
				arg.Amount = decimal.Zero
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			arg := base
			tc.mutate(&arg)

			_, err := testRepo.Create(context.Background(), arg)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateWithCounterparty(t *testing.T) {
	account := test.SeedAccount(t, testDB)
	counterparty := test.SeedAccount(t, testDB)

	arg := domain.CreateTransactionParams{
		AccountID:             account.ID,
		TransactionNumber:     randompkg.TransactionNumber(),
		TransactionType:       domain.TypeTransferIn,
		Amount:                decimal.RequireFromString("50"),
		Currency:              account.Currency,
		BalanceBefore:         decimal.Zero,
		BalanceAfter:          decimal.RequireFromString("50"),
		CounterpartyAccountID: &counterparty.ID,
		Channel:               domain.ChannelTeller,
		CreatedBy:             "test",
	}

	txn, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotNil(t, txn.CounterpartyAccountID)
	require.Equal(t, counterparty.ID, *txn.CounterpartyAccountID)
}

func TestGet(t *testing.T) {
	account := test.SeedAccount(t, testDB)
	want := createRandomTransaction(t, account)

	got, err := testRepo.Get(context.Background(), want.ID)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.TransactionNumber, got.TransactionNumber)

	_, err = testRepo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListByAccount(t *testing.T) {
	account := test.SeedAccount(t, testDB)

	for i := 0; i < 5; i++ {
		createRandomTransaction(t, account)
	}

	items, err := testRepo.ListByAccount(context.Background(), account.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Newest first.
	for i := 1; i < len(items); i++ {
		require.False(t, items[i].TransactionDate.After(items[i-1].TransactionDate))
	}

	items, err = testRepo.ListByAccount(context.Background(), account.ID, 3, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)

	items, err = testRepo.ListByAccount(context.Background(), uuid.New(), 3, 0)
	require.NoError(t, err)
	require.Empty(t, items)
}
