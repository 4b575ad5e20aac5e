package finance_test

import (
	"testing"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func tasksWithStatuses(statuses ...domain.TaskStatus) []domain.Task {
	tasks := make([]domain.Task, len(statuses))
	for i, s := range statuses {
		tasks[i] = domain.Task{Status: s}
	}
	return tasks
}

func TestDeriveProgress(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []domain.Task
		want     int
		applies  bool
	}{
		{
			name: "two of four done is fifty percent",
			tasks: tasksWithStatuses(
				domain.TaskStatusDone,
				domain.TaskStatusDone,
				domain.TaskStatusToDo,
				domain.TaskStatusInProgress,
			),
			want:    50,
			applies: true,
		},
		{
			name:    "empty task list does not apply",
			tasks:   nil,
			want:    0,
			applies: false,
		},
		{
			name:    "all done is one hundred",
			tasks:   tasksWithStatuses(domain.TaskStatusDone, domain.TaskStatusDone),
			want:    100,
			applies: true,
		},
		{
			name:    "none done is zero",
			tasks:   tasksWithStatuses(domain.TaskStatusToDo, domain.TaskStatusInProgress),
			want:    0,
			applies: true,
		},
		{
			name: "one of three rounds half up to 33",
			tasks: tasksWithStatuses(
				domain.TaskStatusDone,
				domain.TaskStatusToDo,
				domain.TaskStatusToDo,
			),
			want:    33,
			applies: true,
		},
		{
			name: "two of three rounds half up to 67",
			tasks: tasksWithStatuses(
				domain.TaskStatusDone,
				domain.TaskStatusDone,
				domain.TaskStatusToDo,
			),
			want:    67,
			applies: true,
		},
		{
			name: "exact half rounds up",
			tasks: tasksWithStatuses(
				domain.TaskStatusDone,
				domain.TaskStatusToDo,
				domain.TaskStatusToDo,
				domain.TaskStatusToDo,
				domain.TaskStatusDone,
				domain.TaskStatusToDo,
				domain.TaskStatusToDo,
				domain.TaskStatusToDo,
			),
			want:    25,
			applies: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applies := finance.DeriveProgress(tt.tasks)
			assert.Equal(t, tt.applies, applies)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveProgress_Bounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 100).Draw(t, "count")
		tasks := make([]domain.Task, count)
		allDone := true
		for i := range tasks {
			status := rapid.SampledFrom([]domain.TaskStatus{
				domain.TaskStatusToDo,
				domain.TaskStatusInProgress,
				domain.TaskStatusDone,
			}).Draw(t, "status")
			tasks[i] = domain.Task{Status: status}
			if status != domain.TaskStatusDone {
				allDone = false
			}
		}

		got, applies := finance.DeriveProgress(tasks)
		assert.True(t, applies)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		assert.Equal(t, allDone, got == 100, "progress is 100 iff every task is done")
	})
}
