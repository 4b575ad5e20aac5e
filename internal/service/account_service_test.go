package service_test

import (
	"context"
	"testing"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/atelierhq/agency-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*service.AccountService, *repository.ProjectRepository) {
	db := setupTestDB(t)
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	return service.NewAccountService(accountRepo, transactionRepo, projectRepo, testLogger()), projectRepo
}

func TestAccountService_LedgerDerivedFromTransactions(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, &domain.CreateAccountRequest{
		Name:    "Acme Corp",
		Company: "Acme Corporation",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, account.Ledger.Balance)

	account, err = svc.AddTransaction(ctx, account.ID, &domain.CreateTransactionRequest{
		Type:   domain.TransactionTypeDebt,
		Amount: 5000,
	})
	require.NoError(t, err)

	account, err = svc.AddTransaction(ctx, account.ID, &domain.CreateTransactionRequest{
		Type:        domain.TransactionTypePayment,
		Amount:      2000,
		Description: "first installment",
	})
	require.NoError(t, err)

	assert.Equal(t, 5000.0, account.Ledger.TotalDebt)
	assert.Equal(t, 2000.0, account.Ledger.TotalPaid)
	assert.Equal(t, 3000.0, account.Ledger.Balance)
	assert.Len(t, account.Transactions, 2)
}

func TestAccountService_OverpaymentGoesNegative(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, &domain.CreateAccountRequest{
		Name:    "Beta LLC",
		Company: "Beta",
	})
	require.NoError(t, err)

	account, err = svc.AddTransaction(ctx, account.ID, &domain.CreateTransactionRequest{
		Type:   domain.TransactionTypeDebt,
		Amount: 1000,
	})
	require.NoError(t, err)

	account, err = svc.AddTransaction(ctx, account.ID, &domain.CreateTransactionRequest{
		Type:   domain.TransactionTypePayment,
		Amount: 1500,
	})
	require.NoError(t, err)

	assert.Equal(t, -500.0, account.Ledger.Balance)
}

func TestAccountService_DeleteWithoutProjectsRemoves(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, &domain.CreateAccountRequest{
		Name:    "Solo Client",
		Company: "Solo",
	})
	require.NoError(t, err)

	result, err := svc.Delete(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, result.Archived)

	_, err = svc.GetByID(ctx, account.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAccountService_DeleteWithProjectsArchives(t *testing.T) {
	svc, projectRepo := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, &domain.CreateAccountRequest{
		Name:    "Busy Client",
		Company: "Busy",
	})
	require.NoError(t, err)

	project := &domain.Project{
		Title:     "Ongoing Work",
		Client:    "Busy Client",
		AccountID: &account.ID,
	}
	require.NoError(t, projectRepo.Create(ctx, project))

	result, err := svc.Delete(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, result.Archived)

	// Still readable, but archived and closed to new transactions
	found, err := svc.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusArchived, found.Status)

	_, err = svc.AddTransaction(ctx, account.ID, &domain.CreateTransactionRequest{
		Type:   domain.TransactionTypeDebt,
		Amount: 100,
	})
	assert.ErrorIs(t, err, service.ErrAccountArchived)
}

func TestAccountService_TransactionRejectsBadDate(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, &domain.CreateAccountRequest{
		Name:    "Date Client",
		Company: "Date",
	})
	require.NoError(t, err)

	_, err = svc.AddTransaction(ctx, account.ID, &domain.CreateTransactionRequest{
		Type:   domain.TransactionTypeDebt,
		Amount: 100,
		Date:   "not-a-date",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
