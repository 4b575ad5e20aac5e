package repository

import (
	"context"
	"strings"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&proposal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// Update persists document fields and replaces the item rows in one
// transaction so a reader never sees a half-replaced item list.
func (r *ProposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(proposal).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.ProposalItem{}, "proposal_id = ?", proposal.ID).Error; err != nil {
			return err
		}
		if len(proposal.Items) == 0 {
			return nil
		}
		for i := range proposal.Items {
			proposal.Items[i].ProposalID = proposal.ID
		}
		return tx.Create(&proposal.Items).Error
	})
}

func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.ProposalItem{}, "proposal_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Proposal{}, "id = ?", id).Error
	})
}

func (r *ProposalRepository) List(ctx context.Context, page, pageSize int, search string, status *domain.ProposalStatus) ([]domain.Proposal, int64, error) {
	var proposals []domain.Proposal
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Proposal{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(client_name) LIKE ?", pattern, pattern)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Offset(offset).Limit(pageSize).Order("created_at DESC").
		Find(&proposals).Error

	return proposals, total, err
}

// CountByStatus returns proposal counts grouped by status
func (r *ProposalRepository) CountByStatus(ctx context.Context) (map[domain.ProposalStatus]int, error) {
	type row struct {
		Status domain.ProposalStatus
		Count  int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Proposal{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.ProposalStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
