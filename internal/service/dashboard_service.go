package service

import (
	"context"
	"fmt"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService aggregates the headline figures. Everything here is
// computed from current rows on each call; there is no cached snapshot to
// go stale.
type DashboardService struct {
	accountRepo  *repository.AccountRepository
	projectRepo  *repository.ProjectRepository
	proposalRepo *repository.ProposalRepository
	invoiceRepo  *repository.InvoiceRepository
	expenseRepo  *repository.ExpenseRepository
	logger       *zap.Logger
}

func NewDashboardService(
	accountRepo *repository.AccountRepository,
	projectRepo *repository.ProjectRepository,
	proposalRepo *repository.ProposalRepository,
	invoiceRepo *repository.InvoiceRepository,
	expenseRepo *repository.ExpenseRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		accountRepo:  accountRepo,
		projectRepo:  projectRepo,
		proposalRepo: proposalRepo,
		invoiceRepo:  invoiceRepo,
		expenseRepo:  expenseRepo,
		logger:       logger,
	}
}

func (s *DashboardService) GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	revenue, err := s.invoiceRepo.SumByStatus(ctx, domain.InvoiceStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid invoices: %w", err)
	}

	expenses, err := s.expenseRepo.SumAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	outstanding, err := s.outstandingBalance(ctx)
	if err != nil {
		return nil, err
	}

	projectsByStatus, err := s.projectRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}

	proposalsByStatus, err := s.proposalRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count proposals by status: %w", err)
	}

	averageProgress, err := s.projectRepo.AverageProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to average project progress: %w", err)
	}

	accountCount, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	projectCount, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	net := decimal.NewFromFloat(revenue).
		Sub(decimal.NewFromFloat(expenses)).
		Round(2).
		InexactFloat64()

	return &domain.DashboardMetrics{
		TotalRevenue:       revenue,
		TotalExpenses:      expenses,
		NetProfit:          net,
		OutstandingBalance: outstanding,
		ProjectsByStatus:   projectsByStatus,
		AverageProgress:    averageProgress,
		ProposalsByStatus:  proposalsByStatus,
		AccountCount:       accountCount,
		ProjectCount:       projectCount,
	}, nil
}

// outstandingBalance sums the derived balance of every account's ledger.
func (s *DashboardService) outstandingBalance(ctx context.Context) (float64, error) {
	accounts, err := s.accountRepo.ListWithTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts for balances: %w", err)
	}

	sum := decimal.Zero
	for i := range accounts {
		totals := finance.ComputeLedger(accounts[i].Transactions)
		sum = sum.Add(decimal.NewFromFloat(totals.Balance))
	}
	return sum.Round(2).InexactFloat64(), nil
}
