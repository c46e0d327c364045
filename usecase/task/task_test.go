package task

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type memTaskRepo struct {
	tasks   map[string]*domain.Task
	nextID  int
	updates int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *memTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if !domain.CanActOnTask(filter.SubjectID, task) {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (r *memTaskRepo) ListOverdue(_ context.Context, subjectID string, today domain.Date) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if domain.CanActOnTask(subjectID, task) && task.IsOverdue(today) {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task.ID == "" {
		r.nextID++
		task.ID = fmt.Sprintf("t%d", r.nextID)
	}
	task.ProjectOwnerID = "alice"
	copied := *task
	r.tasks[task.ID] = &copied
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.updates++
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type memProjectRepo struct {
	projects map[string]*domain.Project
}

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (r *memProjectRepo) List(_ context.Context, _ repository.ProjectFilter) ([]domain.Project, error) {
	return nil, nil
}

func (r *memProjectRepo) CreateWithTasks(_ context.Context, project *domain.Project, tasks []domain.Task) (*domain.Project, error) {
	project.Tasks = tasks
	r.projects[project.ID] = project
	return project, nil
}

func (r *memProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

type memActivityRepo struct {
	entries []domain.TaskActivityLog
}

func (r *memActivityRepo) Create(_ context.Context, entry *domain.TaskActivityLog) (*domain.TaskActivityLog, error) {
	r.entries = append(r.entries, *entry)
	return entry, nil
}

func (r *memActivityRepo) ListByTask(_ context.Context, taskID string) ([]domain.TaskActivityLog, error) {
	var out []domain.TaskActivityLog
	for _, e := range r.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

type hookSpy struct {
	runs []string
}

func (s *hookSpy) Run(_ context.Context, task *domain.Task, _ *domain.Project, created bool) {
	if created {
		s.runs = append(s.runs, task.ID)
	}
}

func strPtr(s string) *string { return &s }

func datePtr(d domain.Date) *domain.Date { return &d }

func newFixture() (*UseCase, *memTaskRepo, *hookSpy) {
	tasks := newMemTaskRepo()
	projects := &memProjectRepo{projects: map[string]*domain.Project{
		"p1": {ID: "p1", Name: "Apollo", OwnerID: "alice"},
	}}
	spy := &hookSpy{}
	uc := New(tasks, projects, &memActivityRepo{}, spy, nil)
	return uc, tasks, spy
}

func seedTask(repo *memTaskRepo, description string, assignee string) string {
	task := &domain.Task{
		ProjectID:   "p1",
		Title:       "existing task",
		Description: description,
		Status:      domain.StatusTodo,
		DueDate:     domain.Today().AddDays(5),
	}
	if assignee != "" {
		task.AssignedTo = &assignee
	}
	created, _ := repo.Create(context.Background(), task)
	return created.ID
}

func TestCreateTask_Valid(t *testing.T) {
	uc, _, spy := newFixture()

	created, err := uc.CreateTask(context.Background(), "alice", domain.TaskChange{
		ProjectID: strPtr("p1"),
		Title:     strPtr("write docs"),
		DueDate:   datePtr(domain.Today()),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, created.Status)
	assert.Equal(t, []string{created.ID}, spy.runs, "hook fires exactly once on creation")
}

func TestCreateTask_PastDueDateRejected(t *testing.T) {
	uc, repo, spy := newFixture()

	_, err := uc.CreateTask(context.Background(), "alice", domain.TaskChange{
		ProjectID: strPtr("p1"),
		Title:     strPtr("late task"),
		DueDate:   datePtr(domain.Today().AddDays(-1)),
	})
	require.Error(t, err)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields["due_date"], "Due date cannot be in the past.")
	assert.Empty(t, repo.tasks)
	assert.Empty(t, spy.runs)
}

func TestCreateTask_MissingFields(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.CreateTask(context.Background(), "alice", domain.TaskChange{})
	require.Error(t, err)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.NotEmpty(t, vErr.Fields["project_id"])
	assert.NotEmpty(t, vErr.Fields["title"])
	assert.NotEmpty(t, vErr.Fields["due_date"])
}

func TestUpdateTask_Authorization(t *testing.T) {
	uc, repo, _ := newFixture()
	id := seedTask(repo, "", "bob")

	title := "renamed"

	_, err := uc.UpdateTask(context.Background(), "carol", id, domain.TaskChange{Title: &title})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden), "stranger is denied")

	_, err = uc.UpdateTask(context.Background(), "bob", id, domain.TaskChange{Title: &title})
	assert.NoError(t, err, "assignee may update")

	_, err = uc.UpdateTask(context.Background(), "alice", id, domain.TaskChange{Title: &title})
	assert.NoError(t, err, "project owner may update")
}

func TestUpdateTask_CompletedChecksSubmittedFieldsOnly(t *testing.T) {
	uc, repo, _ := newFixture()
	// stored description is non-empty, but the payload omits it
	id := seedTask(repo, "already documented", "")

	_, err := uc.UpdateTask(context.Background(), "alice", id, domain.TaskChange{
		Status: strPtr(domain.StatusCompleted),
	})
	require.Error(t, err)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields[domain.NonFieldErrors], "Description is required to mark task as completed.")
}

func TestUpdateTask_NeverFiresHook(t *testing.T) {
	uc, repo, spy := newFixture()
	id := seedTask(repo, "", "")

	_, err := uc.UpdateTask(context.Background(), "alice", id, domain.TaskChange{
		Status:      strPtr(domain.StatusCompleted),
		Description: strPtr("all done"),
	})
	require.NoError(t, err)
	assert.Empty(t, spy.runs, "the creation hook must not fire on updates")
}

func TestMarkComplete_EmptyDescriptionLeavesStatus(t *testing.T) {
	uc, repo, _ := newFixture()
	id := seedTask(repo, "", "")

	_, err := uc.MarkComplete(context.Background(), "alice", id)
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)

	stored, _ := repo.GetByID(context.Background(), id)
	assert.Equal(t, domain.StatusTodo, stored.Status, "status is unchanged on validation failure")
	assert.Zero(t, repo.updates)
}

func TestMarkComplete_Success(t *testing.T) {
	uc, repo, spy := newFixture()
	id := seedTask(repo, "well described", "")

	completed, err := uc.MarkComplete(context.Background(), "alice", id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)

	stored, _ := repo.GetByID(context.Background(), id)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Empty(t, spy.runs, "completion transition never fires the creation hook")
}

func TestListOverdue(t *testing.T) {
	uc, repo, _ := newFixture()

	overdueID := seedTask(repo, "", "bob")
	repo.tasks[overdueID].DueDate = domain.Today().AddDays(-2)

	completedID := seedTask(repo, "done", "")
	repo.tasks[completedID].DueDate = domain.Today().AddDays(-2)
	repo.tasks[completedID].Status = domain.StatusCompleted

	seedTask(repo, "", "") // due in the future

	tasks, err := uc.ListOverdue(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, overdueID, tasks[0].ID)

	// bob only sees the overdue task assigned to him
	tasks, err = uc.ListOverdue(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, overdueID, tasks[0].ID)
}

func TestDeleteTask_Forbidden(t *testing.T) {
	uc, repo, _ := newFixture()
	id := seedTask(repo, "", "bob")

	err := uc.DeleteTask(context.Background(), "carol", id)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	assert.Len(t, repo.tasks, 1)

	require.NoError(t, uc.DeleteTask(context.Background(), "alice", id))
	assert.Empty(t, repo.tasks)
}

func TestListActivity_Forbidden(t *testing.T) {
	uc, repo, _ := newFixture()
	id := seedTask(repo, "", "")

	_, err := uc.ListActivity(context.Background(), "carol", id)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	_, err = uc.ListActivity(context.Background(), "alice", id)
	assert.NoError(t, err)
}
