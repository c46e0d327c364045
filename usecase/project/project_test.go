package project

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type memProjectRepo struct {
	projects    map[string]*domain.Project
	createCalls int
	createErr   error
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (r *memProjectRepo) List(_ context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	var out []domain.Project
	for _, project := range r.projects {
		if filter.OwnerID != "" && project.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, *project)
	}
	return out, nil
}

func (r *memProjectRepo) CreateWithTasks(_ context.Context, project *domain.Project, tasks []domain.Task) (*domain.Project, error) {
	r.createCalls++
	if r.createErr != nil {
		// transactional: nothing is stored on failure
		return nil, r.createErr
	}
	project.ID = fmt.Sprintf("p%d", len(r.projects)+1)
	for i := range tasks {
		tasks[i].ID = fmt.Sprintf("%s-t%d", project.ID, i+1)
		tasks[i].ProjectID = project.ID
		tasks[i].ProjectOwnerID = project.OwnerID
	}
	project.Tasks = tasks
	copied := *project
	r.projects[project.ID] = &copied
	return project, nil
}

func (r *memProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
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

func nestedTask(title string, due domain.Date) domain.TaskChange {
	return domain.TaskChange{Title: strPtr(title), DueDate: datePtr(due)}
}

func TestCreateProject_WithNestedTasks(t *testing.T) {
	repo := newMemProjectRepo()
	spy := &hookSpy{}
	uc := New(repo, spy, nil)

	due := domain.Today().AddDays(7)
	created, err := uc.CreateProject(context.Background(), "alice", "Apollo", "launch prep", []domain.TaskChange{
		nestedTask("book venue", due),
		nestedTask("send invites", due),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.OwnerID)
	require.Len(t, created.Tasks, 2)
	assert.Equal(t, created.ID, created.Tasks[0].ProjectID)
	assert.Len(t, spy.runs, 2, "hook fires once per created task")
}

func TestCreateProject_InvalidNestedTaskRollsBackEverything(t *testing.T) {
	repo := newMemProjectRepo()
	spy := &hookSpy{}
	uc := New(repo, spy, nil)

	due := domain.Today().AddDays(1)
	_, err := uc.CreateProject(context.Background(), "alice", "Apollo", "", []domain.TaskChange{
		nestedTask("first", due),
		nestedTask("second", domain.Today().AddDays(-1)), // invalid
		nestedTask("third", due),
	})
	require.Error(t, err)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields["create_tasks.1.due_date"], "Due date cannot be in the past.")

	assert.Zero(t, repo.createCalls, "no write is attempted")
	assert.Empty(t, repo.projects, "zero project rows persisted")
	assert.Empty(t, spy.runs)
}

func TestCreateProject_PersistenceFailureRunsNoHooks(t *testing.T) {
	repo := newMemProjectRepo()
	repo.createErr = errors.New("tx aborted")
	spy := &hookSpy{}
	uc := New(repo, spy, nil)

	_, err := uc.CreateProject(context.Background(), "alice", "Apollo", "", []domain.TaskChange{
		nestedTask("only task", domain.Today()),
	})
	require.Error(t, err)
	assert.Empty(t, repo.projects)
	assert.Empty(t, spy.runs)
}

func TestCreateProject_InvalidName(t *testing.T) {
	uc := New(newMemProjectRepo(), &hookSpy{}, nil)

	_, err := uc.CreateProject(context.Background(), "alice", "  ", "", nil)
	require.Error(t, err)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.NotEmpty(t, vErr.Fields["name"])
}

func TestProjectAccessIsOwnerOnly(t *testing.T) {
	repo := newMemProjectRepo()
	uc := New(repo, &hookSpy{}, nil)

	created, err := uc.CreateProject(context.Background(), "alice", "Apollo", "", nil)
	require.NoError(t, err)

	_, err = uc.GetProject(context.Background(), "bob", created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	_, err = uc.UpdateProject(context.Background(), "bob", created.ID, strPtr("Hijack"), nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	err = uc.DeleteProject(context.Background(), "bob", created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	got, err := uc.GetProject(context.Background(), "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", got.Name)
}

func TestUpdateProject_PartialFields(t *testing.T) {
	repo := newMemProjectRepo()
	uc := New(repo, &hookSpy{}, nil)

	created, err := uc.CreateProject(context.Background(), "alice", "Apollo", "original", nil)
	require.NoError(t, err)

	updated, err := uc.UpdateProject(context.Background(), "alice", created.ID, nil, strPtr("revised"))
	require.NoError(t, err)
	assert.Equal(t, "Apollo", updated.Name, "omitted name is untouched")
	assert.Equal(t, "revised", updated.Description)
}

func TestListProjects_ScopedToOwner(t *testing.T) {
	repo := newMemProjectRepo()
	uc := New(repo, &hookSpy{}, nil)

	_, err := uc.CreateProject(context.Background(), "alice", "Apollo", "", nil)
	require.NoError(t, err)
	_, err = uc.CreateProject(context.Background(), "bob", "Borealis", "", nil)
	require.NoError(t, err)

	projects, err := uc.ListProjects(context.Background(), "alice", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Apollo", projects[0].Name)
}
