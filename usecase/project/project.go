package project

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

type UseCase struct {
	projects repository.ProjectRepository
	hook     usecase.TaskCreationHook
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, hook usecase.TaskCreationHook, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		hook:     hook,
		logger:   logger,
	}
}

// ListProjects returns the subject's own projects, optionally searched by
// name. Other users' projects are never visible.
func (uc *UseCase) ListProjects(ctx context.Context, subjectID, search string, limit, offset int) ([]domain.Project, error) {
	return uc.projects.List(ctx, repository.ProjectFilter{
		OwnerID: subjectID,
		Search:  search,
		Limit:   limit,
		Offset:  offset,
	})
}

// GetProject loads one project the subject owns, with its tasks.
func (uc *UseCase) GetProject(ctx context.Context, subjectID, id string) (*domain.Project, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnProject(subjectID, project) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

// CreateProject inserts a project and its nested tasks atomically: if any
// nested task fails validation or persistence, nothing is stored. Each
// created task then fires the creation hook, after the commit.
func (uc *UseCase) CreateProject(ctx context.Context, subjectID, name, description string, nested []domain.TaskChange) (*domain.Project, error) {
	errs := domain.NewValidationError()
	mergeValidation(errs, "", domain.ValidateProject(name))

	today := domain.Today()
	tasks := make([]domain.Task, 0, len(nested))
	for i, change := range nested {
		// project binding is implied by the enclosing create
		change.ProjectID = nil
		mergeValidation(errs, fmt.Sprintf("create_tasks.%d.", i), domain.ValidateTaskChange(change, today, false))
		tasks = append(tasks, domain.BuildTask(change))
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:        name,
		Description: description,
		OwnerID:     subjectID,
	}

	created, err := uc.projects.CreateWithTasks(ctx, project, tasks)
	if err != nil {
		return nil, err
	}

	for i := range created.Tasks {
		uc.hook.Run(ctx, &created.Tasks[i], created, true)
	}
	return created, nil
}

// UpdateProject renames or re-describes a project the subject owns. The
// owner and creation time never change.
func (uc *UseCase) UpdateProject(ctx context.Context, subjectID, id string, name, description *string) (*domain.Project, error) {
	project, err := uc.GetProject(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := domain.ValidateProject(*name); err != nil {
			return nil, err
		}
		project.Name = *name
	}
	if description != nil {
		project.Description = *description
	}

	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project the subject owns; its tasks cascade.
func (uc *UseCase) DeleteProject(ctx context.Context, subjectID, id string) error {
	if _, err := uc.GetProject(ctx, subjectID, id); err != nil {
		return err
	}
	return uc.projects.Delete(ctx, id)
}

func mergeValidation(into *domain.ValidationError, prefix string, err error) {
	if err == nil {
		return
	}
	if vErr, ok := domain.AsValidationError(err); ok {
		for field, messages := range vErr.Fields {
			for _, message := range messages {
				into.Add(prefix+field, message)
			}
		}
	}
}
