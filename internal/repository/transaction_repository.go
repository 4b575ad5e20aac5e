package repository

import (
	"context"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository is append-only: ledger entries are created, listed
// and cascaded away with their account, never updated or removed on their
// own.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append adds a ledger entry. This is the only mutation primitive.
func (r *TransactionRepository) Append(ctx context.Context, transaction *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// ListByAccount returns an account's ledger in insertion order
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}
