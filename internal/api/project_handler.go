package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"taskboard/internal/api/shared"
	"taskboard/internal/domain"
	"taskboard/internal/store"
)

// ProjectNotifier receives project change announcements after the store has
// committed the mutation.
type ProjectNotifier interface {
	ProjectCreated(project *domain.Project)
	ProjectUpdated(project *domain.Project)
	ProjectDeleted(projectID uuid.UUID)
}

// ProjectHandler handles project CRUD requests.
type ProjectHandler struct {
	projectStore store.ProjectStore
	notifier     ProjectNotifier
	logger       *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(
	projectStore store.ProjectStore,
	notifier ProjectNotifier,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectStore: projectStore,
		notifier:     notifier,
		logger:       logger.With("component", "project_handler"),
	}
}

// ListProjects handles GET /api/v1/projects requests.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	projects, err := h.projectStore.List(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		NewListResponse("projects", projects, len(projects), 1, 0))
}

// GetProject handles GET /api/v1/projects/{id} requests.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectStore.GetByID(r.Context(), userID, id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// CreateProject handles POST /api/v1/projects requests.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := domain.NewProject(userID, req.Name, req.Description)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if req.Color != "" {
		project.Color = req.Color
	}

	if err := h.projectStore.Create(r.Context(), project); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.notifier.ProjectCreated(project)
	shared.RespondWithJSON(w, r, http.StatusCreated,
		NewMutationResponse("Project created", "project", project))
}

// UpdateProject handles PATCH /api/v1/projects/{id} requests.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := h.projectStore.GetByID(r.Context(), userID, id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Color != nil {
		project.Color = *req.Color
	}
	if err := project.Validate(); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.projectStore.Update(r.Context(), project); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.notifier.ProjectUpdated(project)
	shared.RespondWithJSON(w, r, http.StatusOK,
		NewMutationResponse("Project updated", "project", project))
}

// DeleteProject handles DELETE /api/v1/projects/{id} requests. The store
// removes the project's tasks, their tag links and their comments in the same
// transaction.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectStore.Delete(r.Context(), userID, id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.notifier.ProjectDeleted(id)
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Project deleted",
	})
}
