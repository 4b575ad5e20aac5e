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

func TestSyncService_SyncProjects(t *testing.T) {
	db := setupTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	svc := service.NewSyncService(projectRepo, testLogger())

	// Pre-existing project in the store
	existing := &domain.Project{
		Title:  "Website Redesign",
		Client: "Acme Corp",
		Status: domain.ProjectStatusInProgress,
	}
	require.NoError(t, projectRepo.Create(context.Background(), existing))

	req := &domain.SyncProjectsRequest{
		Projects: []domain.SyncProjectRecord{
			{ID: "c-1", Title: "Website Redesign", Client: "Acme Corp", Status: domain.ProjectStatusPlanning},
			{ID: "c-2", Title: "Brand Refresh", Client: "Acme Corp", Status: domain.ProjectStatusPlanning},
			{ID: "c-3", Title: "Website Redesign", Client: "Beta LLC", Status: domain.ProjectStatusPlanning},
		},
	}

	result, err := svc.SyncProjects(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Skipped)

	// The store copy of the duplicate must be untouched
	found, err := projectRepo.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusInProgress, found.Status)
}

func TestSyncService_SyncProjects_ResendIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	svc := service.NewSyncService(projectRepo, testLogger())

	req := &domain.SyncProjectsRequest{
		Projects: []domain.SyncProjectRecord{
			{ID: "c-1", Title: "App Build", Client: "Gamma Inc", Progress: 40},
			{ID: "c-2", Title: "SEO Audit", Client: "Gamma Inc", Progress: 10},
		},
	}

	first, err := svc.SyncProjects(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Synced)
	assert.Equal(t, 0, first.Skipped)

	// Replaying the same batch inserts nothing
	second, err := svc.SyncProjects(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Synced)
	assert.Equal(t, 2, second.Skipped)

	count, err := projectRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSyncService_SyncProjects_SameTitleDifferentClient(t *testing.T) {
	db := setupTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	svc := service.NewSyncService(projectRepo, testLogger())

	req := &domain.SyncProjectsRequest{
		Projects: []domain.SyncProjectRecord{
			{ID: "c-1", Title: "Launch Campaign", Client: "Acme Corp"},
			{ID: "c-2", Title: "Launch Campaign", Client: "Beta LLC"},
		},
	}

	result, err := svc.SyncProjects(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 0, result.Skipped)
}

func TestSyncService_SyncProjects_InvalidStatusDefaults(t *testing.T) {
	db := setupTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	svc := service.NewSyncService(projectRepo, testLogger())

	req := &domain.SyncProjectsRequest{
		Projects: []domain.SyncProjectRecord{
			{ID: "c-1", Title: "Retainer Work", Client: "Delta Co", Status: domain.ProjectStatus("bogus")},
		},
	}

	result, err := svc.SyncProjects(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)

	projects, _, err := projectRepo.List(context.Background(), 1, 10, "", nil)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.ProjectStatusPlanning, projects[0].Status)
}
