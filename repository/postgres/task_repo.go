package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

const taskColumns = `
	t.id, t.project_id, t.title, t.description, t.status, t.due_date, t.assigned_to, t.created_at, p.owner_id
`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	WHERE t.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	WHERE ($1 = '' OR p.owner_id = $1 OR t.assigned_to = $1)
	  AND ($2 = '' OR t.status = $2)
	  AND ($3 = '' OR t.assigned_to = $3)
	  AND ($4::date IS NULL OR t.due_date = $4)
	  AND ($5 = '' OR t.title ILIKE '%' || $5 || '%' OR t.description ILIKE '%' || $5 || '%')
	ORDER BY t.created_at DESC
	LIMIT $6 OFFSET $7
	`

	var due interface{}
	if filter.DueDate != nil {
		due = filter.DueDate.Time()
	}

	rows, err := r.pool.Query(ctx, query,
		filter.SubjectID,
		filter.Status,
		filter.AssignedTo,
		due,
		filter.Search,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) ListOverdue(ctx context.Context, subjectID string, today domain.Date) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	WHERE (p.owner_id = $1 OR t.assigned_to = $1)
	  AND t.due_date < $2
	  AND t.status IN ('todo', 'in_progress')
	ORDER BY t.due_date ASC
	`
	rows, err := r.pool.Query(ctx, query, subjectID, today.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, project_id, title, description, status, due_date, assigned_to)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, (SELECT owner_id FROM projects WHERE id = $2)
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate.Time(),
		task.AssignedTo,
	).Scan(&task.CreatedAt, &task.ProjectOwnerID); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		status = $4,
		due_date = $5,
		assigned_to = $6
	WHERE id = $1
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate.Time(),
		task.AssignedTo,
	).Scan(&task.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var (
		description *string
		due         time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&description,
		&task.Status,
		&due,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.ProjectOwnerID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if description != nil {
		task.Description = *description
	}
	task.DueDate = domain.NewDate(due)

	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
