package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/api/shared"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// fakeTaskService implements service.TaskService with canned behavior.
type fakeTaskService struct {
	task       *domain.Task
	tasks      []*domain.Task
	total      int
	err        error
	lastFilter store.TaskFilter
	deleted    []uuid.UUID
}

func (f *fakeTaskService) CreateTask(_ context.Context, userID uuid.UUID, params service.CreateTaskParams) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, err := domain.NewTask(userID, params.Title, params.Description)
	if err != nil {
		return nil, err
	}
	if params.Priority != "" {
		task.Priority = params.Priority
	}
	return task, nil
}

func (f *fakeTaskService) GetTask(_ context.Context, _, _ uuid.UUID) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

func (f *fakeTaskService) ListTasks(_ context.Context, _ uuid.UUID, filter store.TaskFilter) ([]*domain.Task, int, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.tasks, f.total, nil
}

func (f *fakeTaskService) UpdateTask(_ context.Context, _, _ uuid.UUID, _ service.TaskUpdate) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

func (f *fakeTaskService) DeleteTask(_ context.Context, _, taskID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, taskID)
	return nil
}

// authedRequest builds a request carrying an authenticated user ID and an
// optional chi path parameter.
func authedRequest(method, target string, userID uuid.UUID, body []byte, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)

	if len(pathParams) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range pathParams {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Parallel()

	svc := &fakeTaskService{}
	handler := NewTaskHandler(svc, slog.Default())
	userID := uuid.New()

	body, _ := json.Marshal(CreateTaskRequest{Title: "write tests", Priority: "high"})
	rr := httptest.NewRecorder()
	handler.CreateTask(rr, authedRequest(http.MethodPost, "/api/v1/tasks", userID, body, nil))

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp, "message")
	assert.Contains(t, resp, "task")
}

func TestTaskHandler_CreateTaskUnauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&fakeTaskService{}, slog.Default())

	body, _ := json.Marshal(CreateTaskRequest{Title: "no user"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateTask(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTaskHandler_CreateTaskInvalidPriority(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&fakeTaskService{}, slog.Default())

	body, _ := json.Marshal(map[string]string{"title": "x", "priority": "extreme"})
	rr := httptest.NewRecorder()
	handler.CreateTask(rr, authedRequest(http.MethodPost, "/api/v1/tasks", uuid.New(), body, nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTaskHandler_ListTasksFilterParsing(t *testing.T) {
	t.Parallel()

	svc := &fakeTaskService{tasks: []*domain.Task{}, total: 0}
	handler := NewTaskHandler(svc, slog.Default())
	projectID := uuid.New()

	target := "/api/v1/tasks?status=pending&priority=high&project_id=" + projectID.String() +
		"&search=report&overdue=true&page=2&per_page=10"
	rr := httptest.NewRecorder()
	handler.ListTasks(rr, authedRequest(http.MethodGet, target, uuid.New(), nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.TaskStatusPending, svc.lastFilter.Status)
	assert.Equal(t, domain.TaskPriorityHigh, svc.lastFilter.Priority)
	require.NotNil(t, svc.lastFilter.ProjectID)
	assert.Equal(t, projectID, *svc.lastFilter.ProjectID)
	assert.Equal(t, "report", svc.lastFilter.Search)
	assert.True(t, svc.lastFilter.Overdue)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 10, svc.lastFilter.PerPage)
}

func TestTaskHandler_ListTasksBadFilters(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&fakeTaskService{}, slog.Default())

	for _, target := range []string{
		"/api/v1/tasks?status=bogus",
		"/api/v1/tasks?priority=bogus",
		"/api/v1/tasks?project_id=not-a-uuid",
	} {
		rr := httptest.NewRecorder()
		handler.ListTasks(rr, authedRequest(http.MethodGet, target, uuid.New(), nil, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestTaskHandler_ListTasksResponseShape(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	task, err := domain.NewTask(userID, "one", "")
	require.NoError(t, err)
	svc := &fakeTaskService{tasks: []*domain.Task{task}, total: 41}
	handler := NewTaskHandler(svc, slog.Default())

	rr := httptest.NewRecorder()
	handler.ListTasks(rr, authedRequest(http.MethodGet, "/api/v1/tasks?page=3&per_page=20", userID, nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Tasks       []json.RawMessage `json:"tasks"`
		Total       int               `json:"total"`
		Pages       int               `json:"pages"`
		CurrentPage int               `json:"current_page"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Tasks, 1)
	assert.Equal(t, 41, resp.Total)
	assert.Equal(t, 3, resp.Pages)
	assert.Equal(t, 3, resp.CurrentPage)
}

func TestTaskHandler_GetTaskNotFound(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&fakeTaskService{err: store.ErrTaskNotFound}, slog.Default())

	rr := httptest.NewRecorder()
	handler.GetTask(rr, authedRequest(http.MethodGet, "/api/v1/tasks/x", uuid.New(), nil,
		map[string]string{"id": uuid.New().String()}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Task not found")
}

func TestTaskHandler_GetTaskBadID(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&fakeTaskService{}, slog.Default())

	rr := httptest.NewRecorder()
	handler.GetTask(rr, authedRequest(http.MethodGet, "/api/v1/tasks/nope", uuid.New(), nil,
		map[string]string{"id": "nope"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Parallel()

	svc := &fakeTaskService{}
	handler := NewTaskHandler(svc, slog.Default())
	taskID := uuid.New()

	rr := httptest.NewRecorder()
	handler.DeleteTask(rr, authedRequest(http.MethodDelete, "/api/v1/tasks/x", uuid.New(), nil,
		map[string]string{"id": taskID.String()}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []uuid.UUID{taskID}, svc.deleted)
}
