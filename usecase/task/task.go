package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

// CompletionDetail is returned alongside the task by MarkComplete.
const CompletionDetail = "Task marked as completed."

type UseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	activity repository.ActivityLogRepository
	hook     usecase.TaskCreationHook
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	activity repository.ActivityLogRepository,
	hook usecase.TaskCreationHook,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		projects: projects,
		activity: activity,
		hook:     hook,
		logger:   logger,
	}
}

// ListTasks returns the subject's visible tasks, narrowed by the filter.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

// GetTask loads one task the subject is allowed to act on.
func (uc *UseCase) GetTask(ctx context.Context, subjectID, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(subjectID, task) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// CreateTask validates and persists a new task, then fires the creation
// hook. Hook failures never surface here: the task is already committed.
func (uc *UseCase) CreateTask(ctx context.Context, subjectID string, change domain.TaskChange) (*domain.Task, error) {
	errs := domain.NewValidationError()
	if change.ProjectID == nil || *change.ProjectID == "" {
		errs.Add("project_id", "This field is required.")
	}
	mergeValidation(errs, domain.ValidateTaskChange(change, domain.Today(), false))
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	project, err := uc.projects.GetByID(ctx, *change.ProjectID)
	if err != nil {
		return nil, err
	}

	task := domain.BuildTask(change)
	created, err := uc.tasks.Create(ctx, &task)
	if err != nil {
		return nil, err
	}

	uc.hook.Run(ctx, created, project, true)
	return created, nil
}

// UpdateTask applies a partial change to an existing task. Only the
// submitted fields are validated; the creation hook never fires here,
// including on the transition to completed.
func (uc *UseCase) UpdateTask(ctx context.Context, subjectID, id string, change domain.TaskChange) (*domain.Task, error) {
	task, err := uc.GetTask(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTaskChange(change, domain.Today(), true); err != nil {
		return nil, err
	}

	domain.ApplyTaskChange(task, change)
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task the subject may act on. Activity log rows go
// with it.
func (uc *UseCase) DeleteTask(ctx context.Context, subjectID, id string) error {
	if _, err := uc.GetTask(ctx, subjectID, id); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, id)
}

// MarkComplete transitions the task to completed. Validation errors come
// back verbatim as a structured set; the stored status is untouched then.
// The stored description is resent as part of the change so the
// submitted-fields-only rule judges the record as it stands: an empty
// description still fails, a present one passes.
func (uc *UseCase) MarkComplete(ctx context.Context, subjectID, id string) (*domain.Task, error) {
	task, err := uc.GetTask(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}
	status := domain.StatusCompleted
	description := task.Description
	return uc.UpdateTask(ctx, subjectID, id, domain.TaskChange{
		Status:      &status,
		Description: &description,
	})
}

// ListOverdue returns the subject's visible tasks that are past due and
// still open.
func (uc *UseCase) ListOverdue(ctx context.Context, subjectID string) ([]domain.Task, error) {
	return uc.tasks.ListOverdue(ctx, subjectID, domain.Today())
}

// ListActivity returns the append-only event log of a visible task.
func (uc *UseCase) ListActivity(ctx context.Context, subjectID, id string) ([]domain.TaskActivityLog, error) {
	if _, err := uc.GetTask(ctx, subjectID, id); err != nil {
		return nil, err
	}
	return uc.activity.ListByTask(ctx, id)
}

func mergeValidation(into *domain.ValidationError, err error) {
	if err == nil {
		return
	}
	if vErr, ok := domain.AsValidationError(err); ok {
		for field, messages := range vErr.Fields {
			for _, message := range messages {
				into.Add(field, message)
			}
		}
	}
}
