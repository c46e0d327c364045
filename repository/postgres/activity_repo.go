package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type activityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository returns a Postgres-backed implementation of ActivityLogRepository.
func NewActivityLogRepository(pool *pgxpool.Pool) repository.ActivityLogRepository {
	return &activityLogRepository{pool: pool}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *domain.TaskActivityLog) (*domain.TaskActivityLog, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_activity_logs (id, task_id, message)
	VALUES ($1, $2, $3)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query, entry.ID, entry.TaskID, entry.Message).Scan(&entry.CreatedAt); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *activityLogRepository) ListByTask(ctx context.Context, taskID string) ([]domain.TaskActivityLog, error) {
	const query = `
	SELECT id, task_id, message, created_at
	FROM task_activity_logs
	WHERE task_id = $1
	ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TaskActivityLog
	for rows.Next() {
		var entry domain.TaskActivityLog
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
