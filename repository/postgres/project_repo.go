package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
	SELECT id, name, description, owner_id, created_at
	FROM projects
	WHERE id = $1
	`
	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	const tasksQuery = `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	WHERE t.project_id = $1
	ORDER BY t.created_at ASC
	`
	rows, err := r.pool.Query(ctx, tasksQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	project.Tasks, err = collectTasks(rows)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	const query = `
	SELECT id, name, description, owner_id, created_at
	FROM projects
	WHERE ($1 = '' OR owner_id = $1)
	  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.OwnerID, filter.Search, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) CreateWithTasks(ctx context.Context, project *domain.Project, tasks []domain.Task) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const projectQuery = `
	INSERT INTO projects (id, name, description, owner_id)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := tx.QueryRow(ctx, projectQuery,
		project.ID,
		project.Name,
		project.Description,
		project.OwnerID,
	).Scan(&project.CreatedAt); err != nil {
		return nil, err
	}

	const taskQuery = `
	INSERT INTO tasks (id, project_id, title, description, status, due_date, assigned_to)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at
	`
	for i := range tasks {
		task := &tasks[i]
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		task.ProjectID = project.ID
		task.ProjectOwnerID = project.OwnerID

		if err := tx.QueryRow(ctx, taskQuery,
			task.ID,
			task.ProjectID,
			task.Title,
			task.Description,
			task.Status,
			task.DueDate.Time(),
			task.AssignedTo,
		).Scan(&task.CreatedAt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	project.Tasks = tasks
	return project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE projects
	SET name = $2,
		description = $3
	WHERE id = $1
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
	).Scan(&project.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM projects WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var project domain.Project
	var description *string

	if err := row.Scan(
		&project.ID,
		&project.Name,
		&description,
		&project.OwnerID,
		&project.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	if description != nil {
		project.Description = *description
	}
	return &project, nil
}
