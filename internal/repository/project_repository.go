package repository

import (
	"context"
	"strings"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// CreateIfAbsent inserts a project unless one with the same (client, title)
// identity already exists. The decision is made by the store itself via
// ON CONFLICT DO NOTHING, so two admins syncing the same batch concurrently
// cannot double-insert. Returns true when the row was inserted.
func (r *ProjectRepository) CreateIfAbsent(ctx context.Context, project *domain.Project) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit("Tasks", "Account").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client"}, {Name: "title"}},
			DoNothing: true,
		}).
		Create(project)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit("Tasks", "Account").Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Task{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Project{}, "id = ?", id).Error
	})
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, search string, status *domain.ProjectStatus) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(client) LIKE ?", pattern, pattern)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Offset(offset).Limit(pageSize).Order("created_at DESC").
		Find(&projects).Error

	return projects, total, err
}

// CountByAccount reports how many projects link to an account, which
// decides archive vs hard delete.
func (r *ProjectRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return int(count), err
}

// CountByStatus returns project counts grouped by status
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int, error) {
	type row struct {
		Status domain.ProjectStatus
		Count  int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.ProjectStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// AverageProgress returns the mean progress across all projects, 0 when
// there are none.
func (r *ProjectRepository) AverageProgress(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Select("AVG(progress)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&count).Error
	return int(count), err
}

// ---------------------------------------------------------------------------
// Tasks

func (r *ProjectRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *ProjectRepository) GetTask(ctx context.Context, projectID, taskID uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		First(&task, "id = ? AND project_id = ?", taskID, projectID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *ProjectRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *ProjectRepository) DeleteTask(ctx context.Context, projectID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Task{}, "id = ? AND project_id = ?", taskID, projectID).Error
}

// SetProgress persists a derived or admin-set progress value
func (r *ProjectRepository) SetProgress(ctx context.Context, projectID uuid.UUID, progress int) error {
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", projectID).
		Update("progress", progress).Error
}
