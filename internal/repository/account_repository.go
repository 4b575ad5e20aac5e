package repository

import (
	"context"
	"strings"
	"time"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID loads an account with its transaction log in insertion order,
// which is the ledger's chronological order.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// HardDelete removes the account and its transaction log in one
// transaction. Foreign key cascades are not relied on so the sqlite test
// driver behaves like postgres.
func (r *AccountRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Transaction{}, "account_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Account{}, "id = ?", id).Error
	})
}

// Archive soft-deletes the account, keeping the ledger intact
func (r *AccountRepository) Archive(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      domain.AccountStatusArchived,
			"archived_at": now,
		}).Error
}

func (r *AccountRepository) List(ctx context.Context, page, pageSize int, search string, status *domain.AccountStatus) ([]domain.Account, int64, error) {
	var accounts []domain.Account
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Account{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Offset(offset).Limit(pageSize).Order("created_at DESC").
		Find(&accounts).Error

	return accounts, total, err
}

// ListWithTransactions loads every account with its ledger, used by the
// dashboard to derive outstanding balances.
func (r *AccountRepository) ListWithTransactions(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Account{}).Count(&count).Error
	return int(count), err
}

// ListPurgeable returns archived accounts older than the cutoff that no
// longer have any linked projects. Used by the retention job.
func (r *AccountRepository) ListPurgeable(ctx context.Context, cutoff time.Time) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.AccountStatusArchived).
		Where("archived_at IS NOT NULL AND archived_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM projects WHERE projects.account_id = accounts.id)").
		Find(&accounts).Error
	return accounts, err
}
