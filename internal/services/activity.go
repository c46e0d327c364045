package services

import (
	"context"
	"fmt"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

// ActivityRecorder appends immutable log entries for task events.
type ActivityRecorder struct {
	logs repository.ActivityLogRepository
}

func NewActivityRecorder(logs repository.ActivityLogRepository) *ActivityRecorder {
	return &ActivityRecorder{logs: logs}
}

// RecordCreation writes the single log row for a freshly created task.
func (r *ActivityRecorder) RecordCreation(ctx context.Context, task *domain.Task) (*domain.TaskActivityLog, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	entry := &domain.TaskActivityLog{
		TaskID:  task.ID,
		Message: fmt.Sprintf("Task created with title: %s", task.Title),
	}
	return r.logs.Create(ctx, entry)
}
