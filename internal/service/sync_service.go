package service

import (
	"context"
	"fmt"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/repository"
	"go.uber.org/zap"
)

// SyncService reconciles client-held project batches into the durable store.
type SyncService struct {
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewSyncService(projectRepo *repository.ProjectRepository, logger *zap.Logger) *SyncService {
	return &SyncService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// SyncProjects merges a batch of client projects into the store. Identity
// is the (client, title) pair; a record matching an existing project is
// counted as skipped and its payload discarded, the store copy wins. The
// duplicate check rides on the unique index rather than a read-then-write,
// so concurrent batches cannot double-insert.
//
// Records are applied one at a time and the first store error aborts the
// batch; everything inserted before it stays. Clients resolve the partial
// batch by re-sending: replays of already-synced records just raise the
// skipped count.
func (s *SyncService) SyncProjects(ctx context.Context, req *domain.SyncProjectsRequest) (*domain.SyncProjectsResponse, error) {
	response := &domain.SyncProjectsResponse{}

	for _, record := range req.Projects {
		status := record.Status
		if status == "" || !status.IsValid() {
			status = domain.ProjectStatusPlanning
		}

		project := &domain.Project{
			Title:    record.Title,
			Client:   record.Client,
			Status:   status,
			Progress: record.Progress,
			Team:     record.Team,
		}

		inserted, err := s.projectRepo.CreateIfAbsent(ctx, project)
		if err != nil {
			s.logger.Error("project sync aborted",
				zap.Error(err),
				zap.String("client", record.Client),
				zap.String("title", record.Title),
				zap.Int("synced", response.Synced),
				zap.Int("skipped", response.Skipped))
			return nil, fmt.Errorf("failed to sync project %q: %w", record.Title, err)
		}

		if inserted {
			response.Synced++
		} else {
			response.Skipped++
		}
	}

	s.logger.Info("project sync completed",
		zap.Int("synced", response.Synced),
		zap.Int("skipped", response.Skipped))

	return response, nil
}
