package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskforge/backend/api/transport"
	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	taskUC "github.com/taskforge/backend/usecase/task"
)

type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func (r *stubTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *stubTaskRepo) List(_ context.Context, _ repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (r *stubTaskRepo) ListOverdue(_ context.Context, _ string, _ domain.Date) ([]domain.Task, error) {
	return nil, nil
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.tasks[task.ID] = task
	return task, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	delete(r.tasks, id)
	return nil
}

type stubProjectRepo struct{}

func (stubProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	return &domain.Project{ID: id, Name: "Apollo", OwnerID: "alice"}, nil
}

func (stubProjectRepo) List(_ context.Context, _ repository.ProjectFilter) ([]domain.Project, error) {
	return nil, nil
}

func (stubProjectRepo) CreateWithTasks(_ context.Context, project *domain.Project, tasks []domain.Task) (*domain.Project, error) {
	return project, nil
}

func (stubProjectRepo) Update(_ context.Context, _ *domain.Project) error { return nil }

func (stubProjectRepo) Delete(_ context.Context, _ string) error { return nil }

type stubActivityRepo struct{}

func (stubActivityRepo) Create(_ context.Context, entry *domain.TaskActivityLog) (*domain.TaskActivityLog, error) {
	return entry, nil
}

func (stubActivityRepo) ListByTask(_ context.Context, _ string) ([]domain.TaskActivityLog, error) {
	return nil, nil
}

type nopHook struct{}

func (nopHook) Run(_ context.Context, _ *domain.Task, _ *domain.Project, _ bool) {}

func newTaskHandler(tasks *stubTaskRepo) *TaskHandler {
	uc := taskUC.New(tasks, stubProjectRepo{}, stubActivityRepo{}, nopHook{}, nil)
	return NewTaskHandler(uc, nil, nil)
}

func doRequest(method, uri, userID string, userValues map[string]interface{}, handle fasthttp.RequestHandler) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if userID != "" {
		ctx.Request.Header.Set("X-User-ID", userID)
	}
	for key, value := range userValues {
		ctx.SetUserValue(key, value)
	}
	handle(ctx)
	return ctx
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) transport.Envelope {
	t.Helper()
	var envelope transport.Envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	return envelope
}

func seededRepo(description string) *stubTaskRepo {
	return &stubTaskRepo{tasks: map[string]*domain.Task{
		"t1": {
			ID:             "t1",
			ProjectID:      "p1",
			ProjectOwnerID: "alice",
			Title:          "ship v1",
			Description:    description,
			Status:         domain.StatusTodo,
			DueDate:        domain.Today().AddDays(3),
		},
	}}
}

func TestMarkComplete_ValidationErrorShape(t *testing.T) {
	repo := seededRepo("")
	h := newTaskHandler(repo)

	ctx := doRequest(http.MethodPost, "/api/v1/tasks/t1/mark_complete", "alice",
		map[string]interface{}{"id": "t1"}, h.MarkComplete)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	envelope := decodeEnvelope(t, ctx)
	assert.Equal(t, "error", envelope.Status)

	fields, ok := envelope.Error.(map[string]interface{})
	require.True(t, ok, "validation errors are a field map")
	assert.Contains(t, fields, domain.NonFieldErrors)

	assert.Equal(t, domain.StatusTodo, repo.tasks["t1"].Status, "status is unchanged")
}

func TestMarkComplete_Success(t *testing.T) {
	repo := seededRepo("all wrapped up")
	h := newTaskHandler(repo)

	ctx := doRequest(http.MethodPost, "/api/v1/tasks/t1/mark_complete", "alice",
		map[string]interface{}{"id": "t1"}, h.MarkComplete)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	assert.Equal(t, "success", envelope.Status)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, taskUC.CompletionDetail, data["detail"])
	assert.Equal(t, domain.StatusCompleted, repo.tasks["t1"].Status)
}

func TestTaskEndpoints_RequireUser(t *testing.T) {
	h := newTaskHandler(seededRepo(""))

	ctx := doRequest(http.MethodGet, "/api/v1/tasks", "", nil, h.GetTasks)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestGetTask_ForbiddenForStranger(t *testing.T) {
	h := newTaskHandler(seededRepo(""))

	ctx := doRequest(http.MethodGet, "/api/v1/tasks/t1", "carol",
		map[string]interface{}{"id": "t1"}, h.GetTask)
	assert.Equal(t, http.StatusForbidden, ctx.Response.StatusCode())
}

func TestCreateTask_InvalidDateFormat(t *testing.T) {
	h := newTaskHandler(seededRepo(""))

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(http.MethodPost)
	ctx.Request.SetRequestURI("/api/v1/tasks")
	ctx.Request.Header.Set("X-User-ID", "alice")
	ctx.Request.SetBody([]byte(`{"project_id": "p1", "title": "x", "due_date": "31-01-2025"}`))
	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	fields, ok := envelope.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "due_date")
}
