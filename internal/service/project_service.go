package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/atelierhq/agency-api/internal/mapper"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	accountRepo *repository.AccountRepository
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	accountRepo *repository.AccountRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	if req.AccountID != nil {
		if _, err := s.accountRepo.GetByID(ctx, *req.AccountID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to get account: %w", err)
		}
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectStatusPlanning
	}
	if !status.IsValid() {
		return nil, ErrInvalidInput
	}

	project := &domain.Project{
		Title:     req.Title,
		Client:    req.Client,
		AccountID: req.AccountID,
		Status:    status,
		Progress:  req.Progress,
		Team:      req.Team,
		Files:     req.Files,
		Gallery:   req.Gallery,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Status != "" && !req.Status.IsValid() {
		return nil, ErrInvalidInput
	}

	project.Title = req.Title
	project.Client = req.Client
	project.AccountID = req.AccountID
	if req.Status != "" {
		project.Status = req.Status
	}
	project.Team = req.Team
	project.Files = req.Files
	project.Gallery = req.Gallery

	// A manual progress value only sticks while no tasks exist; with tasks
	// present the derived value wins.
	if derived, ok := finance.DeriveProgress(project.Tasks); ok {
		project.Progress = derived
	} else {
		project.Progress = req.Progress
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, search string, status *domain.ProjectStatus) (*domain.PaginatedResponse, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, 0, len(projects))
	for i := range projects {
		dtos = append(dtos, mapper.ToProjectDTO(&projects[i]))
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// AddTask creates a task and recomputes the parent's progress in the same
// request, so a read issued right after already sees the new figure.
func (s *ProjectService) AddTask(ctx context.Context, projectID uuid.UUID, req *domain.CreateTaskRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.TaskStatusToDo
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	task := &domain.Task{
		ProjectID: project.ID,
		Title:     req.Title,
		Status:    status,
		Priority:  priority,
	}

	if err := s.projectRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.refreshProgress(ctx, projectID)
}

func (s *ProjectService) UpdateTask(ctx context.Context, projectID, taskID uuid.UUID, req *domain.UpdateTaskRequest) (*domain.ProjectDTO, error) {
	task, err := s.projectRepo.GetTask(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Title = req.Title
	task.Status = req.Status
	if req.Priority != "" {
		task.Priority = req.Priority
	}

	if err := s.projectRepo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.refreshProgress(ctx, projectID)
}

func (s *ProjectService) DeleteTask(ctx context.Context, projectID, taskID uuid.UUID) (*domain.ProjectDTO, error) {
	if _, err := s.projectRepo.GetTask(ctx, projectID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.projectRepo.DeleteTask(ctx, projectID, taskID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return s.refreshProgress(ctx, projectID)
}

// refreshProgress re-derives and persists the project's completion figure
// after any task mutation. Deleting the last task leaves the stored value
// as it was, per the taskless carve-out.
func (s *ProjectService) refreshProgress(ctx context.Context, projectID uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}

	if derived, ok := finance.DeriveProgress(project.Tasks); ok && derived != project.Progress {
		if err := s.projectRepo.SetProgress(ctx, projectID, derived); err != nil {
			return nil, fmt.Errorf("failed to store project progress: %w", err)
		}
		project.Progress = derived
		s.logger.Debug("project progress recomputed",
			zap.String("project_id", projectID.String()),
			zap.Int("progress", derived))
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}
