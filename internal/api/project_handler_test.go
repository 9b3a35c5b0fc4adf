package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/store"
)

// fakeProjectStore mimics the SQL store's cascade: deleting a project removes
// its tasks in the same operation.
type fakeProjectStore struct {
	projects map[uuid.UUID]*domain.Project
	tasks    map[uuid.UUID][]uuid.UUID // project -> task IDs
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects: make(map[uuid.UUID]*domain.Project),
		tasks:    make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeProjectStore) Create(_ context.Context, project *domain.Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, ownerID, id uuid.UUID) (*domain.Project, error) {
	project, ok := f.projects[id]
	if !ok || project.OwnerID != ownerID {
		return nil, store.ErrProjectNotFound
	}
	return project, nil
}

func (f *fakeProjectStore) List(_ context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) Update(_ context.Context, project *domain.Project) error {
	if _, ok := f.projects[project.ID]; !ok {
		return store.ErrProjectNotFound
	}
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	project, ok := f.projects[id]
	if !ok || project.OwnerID != ownerID {
		return store.ErrProjectNotFound
	}
	delete(f.projects, id)
	delete(f.tasks, id)
	return nil
}

// recordingProjectNotifier records notifications in order.
type recordingProjectNotifier struct {
	created []uuid.UUID
	updated []uuid.UUID
	deleted []uuid.UUID
}

func (r *recordingProjectNotifier) ProjectCreated(p *domain.Project) { r.created = append(r.created, p.ID) }
func (r *recordingProjectNotifier) ProjectUpdated(p *domain.Project) { r.updated = append(r.updated, p.ID) }
func (r *recordingProjectNotifier) ProjectDeleted(id uuid.UUID)      { r.deleted = append(r.deleted, id) }

func TestProjectHandler_CreateProject(t *testing.T) {
	t.Parallel()

	st := newFakeProjectStore()
	notifier := &recordingProjectNotifier{}
	handler := NewProjectHandler(st, notifier, slog.Default())
	userID := uuid.New()

	body, _ := json.Marshal(CreateProjectRequest{Name: "q3 launch", Color: "#FF0000"})
	rr := httptest.NewRecorder()
	handler.CreateProject(rr, authedRequest(http.MethodPost, "/api/v1/projects", userID, body, nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, notifier.created, 1)

	var resp struct {
		Message string          `json:"message"`
		Project *domain.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "q3 launch", resp.Project.Name)
	assert.Equal(t, "#FF0000", resp.Project.Color)
	assert.Equal(t, userID, resp.Project.OwnerID)
}

func TestProjectHandler_CreateProjectDefaultsColor(t *testing.T) {
	t.Parallel()

	handler := NewProjectHandler(newFakeProjectStore(), &recordingProjectNotifier{}, slog.Default())

	body, _ := json.Marshal(CreateProjectRequest{Name: "plain"})
	rr := httptest.NewRecorder()
	handler.CreateProject(rr, authedRequest(http.MethodPost, "/api/v1/projects", uuid.New(), body, nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), domain.DefaultColor)
}

func TestProjectHandler_DeleteProjectCascades(t *testing.T) {
	t.Parallel()

	st := newFakeProjectStore()
	notifier := &recordingProjectNotifier{}
	handler := NewProjectHandler(st, notifier, slog.Default())
	userID := uuid.New()

	project, err := domain.NewProject(userID, "doomed", "")
	require.NoError(t, err)
	require.NoError(t, st.Create(context.Background(), project))
	st.tasks[project.ID] = []uuid.UUID{uuid.New(), uuid.New()}

	rr := httptest.NewRecorder()
	handler.DeleteProject(rr, authedRequest(http.MethodDelete, "/api/v1/projects/x", userID, nil,
		map[string]string{"id": project.ID.String()}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, st.projects, project.ID)
	assert.NotContains(t, st.tasks, project.ID, "the project's tasks go with it")
	require.Len(t, notifier.deleted, 1)
	assert.Equal(t, project.ID, notifier.deleted[0])
}

func TestProjectHandler_DeleteForeignProject(t *testing.T) {
	t.Parallel()

	st := newFakeProjectStore()
	notifier := &recordingProjectNotifier{}
	handler := NewProjectHandler(st, notifier, slog.Default())

	owner := uuid.New()
	project, err := domain.NewProject(owner, "private", "")
	require.NoError(t, err)
	require.NoError(t, st.Create(context.Background(), project))

	rr := httptest.NewRecorder()
	handler.DeleteProject(rr, authedRequest(http.MethodDelete, "/api/v1/projects/x", uuid.New(), nil,
		map[string]string{"id": project.ID.String()}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, st.projects, project.ID, "the project survives a foreign delete attempt")
	assert.Empty(t, notifier.deleted, "no notification for a rejected mutation")
}

func TestProjectHandler_UpdateProjectPartial(t *testing.T) {
	t.Parallel()

	st := newFakeProjectStore()
	handler := NewProjectHandler(st, &recordingProjectNotifier{}, slog.Default())
	userID := uuid.New()

	project, err := domain.NewProject(userID, "old name", "keep me")
	require.NoError(t, err)
	require.NoError(t, st.Create(context.Background(), project))

	name := "new name"
	body, _ := json.Marshal(UpdateProjectRequest{Name: &name})
	rr := httptest.NewRecorder()
	handler.UpdateProject(rr, authedRequest(http.MethodPatch, "/api/v1/projects/x", userID, body,
		map[string]string{"id": project.ID.String()}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "new name", st.projects[project.ID].Name)
	assert.Equal(t, "keep me", st.projects[project.ID].Description)
}
