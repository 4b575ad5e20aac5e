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

func newProjectService(t *testing.T) *service.ProjectService {
	db := setupTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	return service.NewProjectService(projectRepo, accountRepo, testLogger())
}

func TestProjectService_ProgressFollowsTasks(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, &domain.CreateProjectRequest{
		Title:  "Site Build",
		Client: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, project.Progress)

	project, err = svc.AddTask(ctx, project.ID, &domain.CreateTaskRequest{Title: "Design"})
	require.NoError(t, err)
	project, err = svc.AddTask(ctx, project.ID, &domain.CreateTaskRequest{Title: "Build"})
	require.NoError(t, err)
	project, err = svc.AddTask(ctx, project.ID, &domain.CreateTaskRequest{Title: "Launch"})
	require.NoError(t, err)
	assert.Equal(t, 0, project.Progress)

	done := project.Tasks[0].ID
	project, err = svc.UpdateTask(ctx, project.ID, done, &domain.UpdateTaskRequest{
		Title:  "Design",
		Status: domain.TaskStatusDone,
	})
	require.NoError(t, err)
	// 1 of 3 done rounds half up to 33
	assert.Equal(t, 33, project.Progress)

	second := project.Tasks[1].ID
	project, err = svc.UpdateTask(ctx, project.ID, second, &domain.UpdateTaskRequest{
		Title:  "Build",
		Status: domain.TaskStatusDone,
	})
	require.NoError(t, err)
	assert.Equal(t, 67, project.Progress)
}

func TestProjectService_DeleteTaskRecomputes(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, &domain.CreateProjectRequest{
		Title:  "Audit",
		Client: "Beta LLC",
	})
	require.NoError(t, err)

	project, err = svc.AddTask(ctx, project.ID, &domain.CreateTaskRequest{
		Title:  "Collect data",
		Status: domain.TaskStatusDone,
	})
	require.NoError(t, err)
	project, err = svc.AddTask(ctx, project.ID, &domain.CreateTaskRequest{Title: "Write report"})
	require.NoError(t, err)
	assert.Equal(t, 50, project.Progress)

	// Removing the open task leaves only done tasks
	project, err = svc.DeleteTask(ctx, project.ID, project.Tasks[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, project.Progress)
}

func TestProjectService_ManualProgressForTasklessProject(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, &domain.CreateProjectRequest{
		Title:    "Retainer",
		Client:   "Gamma Inc",
		Progress: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, project.Progress)

	// Manual value remains editable while no tasks exist
	project, err = svc.Update(ctx, project.ID, &domain.UpdateProjectRequest{
		Title:    "Retainer",
		Client:   "Gamma Inc",
		Progress: 75,
	})
	require.NoError(t, err)
	assert.Equal(t, 75, project.Progress)

	// Once a task exists the derived figure takes over
	project, err = svc.AddTask(ctx, project.ID, &domain.CreateTaskRequest{Title: "Monthly review"})
	require.NoError(t, err)
	assert.Equal(t, 0, project.Progress)
}

func TestProjectService_DuplicateIdentityRejected(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateProjectRequest{
		Title:  "Launch Campaign",
		Client: "Acme Corp",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateProjectRequest{
		Title:  "Launch Campaign",
		Client: "Acme Corp",
	})
	assert.Error(t, err)
}
