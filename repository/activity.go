package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// ActivityLogRepository persists the append-only task event log. Entries
// are never updated or deleted on their own; they go away with their task.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.TaskActivityLog) (*domain.TaskActivityLog, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.TaskActivityLog, error)
}
