package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/mapper"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	projectRepo     *repository.ProjectRepository
	logger          *zap.Logger
}

func NewAccountService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		logger:          logger,
	}
}

func (s *AccountService) Create(ctx context.Context, req *domain.CreateAccountRequest) (*domain.AccountDTO, error) {
	account := &domain.Account{
		Name:           req.Name,
		Company:        req.Company,
		Status:         domain.AccountStatusActive,
		Currency:       req.Currency,
		PortalUsername: req.PortalUsername,
		PortalPassword: req.PortalPassword,
	}
	if account.Currency == "" {
		account.Currency = "USD"
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	dto := mapper.ToAccountDTO(account, 0)
	return &dto, nil
}

func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountDTO, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	projectCount, err := s.projectRepo.CountByAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count account projects: %w", err)
	}

	dto := mapper.ToAccountDTO(account, projectCount)
	return &dto, nil
}

func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateAccountRequest) (*domain.AccountDTO, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.Name = req.Name
	account.Company = req.Company
	if req.Currency != "" {
		account.Currency = req.Currency
	}
	account.PortalUsername = req.PortalUsername
	if req.PortalPassword != "" {
		account.PortalPassword = req.PortalPassword
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	projectCount, err := s.projectRepo.CountByAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count account projects: %w", err)
	}

	dto := mapper.ToAccountDTO(account, projectCount)
	return &dto, nil
}

// Delete removes an account. Accounts with linked projects are archived
// instead of deleted so project history keeps its reference; the response
// tells the caller which of the two happened.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) (*domain.DeleteAccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	projectCount, err := s.projectRepo.CountByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count account projects: %w", err)
	}

	if projectCount > 0 {
		if err := s.accountRepo.Archive(ctx, account.ID); err != nil {
			return nil, fmt.Errorf("failed to archive account: %w", err)
		}
		s.logger.Info("account archived",
			zap.String("account_id", account.ID.String()),
			zap.Int("linked_projects", projectCount))
		return &domain.DeleteAccountResponse{Archived: true}, nil
	}

	if err := s.accountRepo.HardDelete(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}
	s.logger.Info("account deleted", zap.String("account_id", account.ID.String()))
	return &domain.DeleteAccountResponse{Archived: false}, nil
}

func (s *AccountService) List(ctx context.Context, page, pageSize int, search string, status *domain.AccountStatus) (*domain.PaginatedResponse, error) {
	accounts, total, err := s.accountRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	dtos := make([]domain.AccountDTO, 0, len(accounts))
	for i := range accounts {
		dtos = append(dtos, mapper.ToAccountDTO(&accounts[i], 0))
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// AddTransaction appends one entry to the account's ledger and returns the
// account with totals recomputed over the grown log. Existing entries are
// never touched.
func (s *AccountService) AddTransaction(ctx context.Context, accountID uuid.UUID, req *domain.CreateTransactionRequest) (*domain.AccountDTO, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.Status == domain.AccountStatusArchived {
		return nil, ErrAccountArchived
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidInput
		}
		date = parsed
	}

	transaction := &domain.Transaction{
		AccountID:   account.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}

	if err := s.transactionRepo.Append(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	// Re-read so the DTO reflects the full log including the new entry
	account, err = s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload account: %w", err)
	}

	projectCount, err := s.projectRepo.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count account projects: %w", err)
	}

	dto := mapper.ToAccountDTO(account, projectCount)
	return &dto, nil
}

func (s *AccountService) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]domain.TransactionDTO, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	transactions, err := s.transactionRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	dtos := make([]domain.TransactionDTO, 0, len(transactions))
	for i := range transactions {
		dtos = append(dtos, mapper.ToTransactionDTO(&transactions[i]))
	}
	return dtos, nil
}
