package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"taskboard/internal/api/shared"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// TaskHandler handles task CRUD and listing requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With("component", "task_handler"),
	}
}

// ListTasks handles GET /api/v1/tasks requests. Supported query parameters:
// status, priority, project_id, search, overdue, page, per_page.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter, ok := parseTaskFilter(w, r)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasks(r.Context(), userID, filter)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		NewListResponse("tasks", tasks, total, filter.Page, filter.PerPage))
}

// GetTask handles GET /api/v1/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /api/v1/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		TagNames:    req.Tags,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated,
		NewMutationResponse("Task created", "task", task))
}

// UpdateTask handles PATCH /api/v1/tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := service.TaskUpdate{
		Title:        req.Title,
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		ClearProject: req.ClearProject,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		TagNames:     req.Tags,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		update.Priority = &priority
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, id, update)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		NewMutationResponse("Task updated", "task", task))
}

// DeleteTask handles DELETE /api/v1/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Task deleted",
	})
}

// parseTaskFilter reads the listing query parameters into a TaskFilter. It
// writes a 400 response and returns false on an invalid value.
func parseTaskFilter(w http.ResponseWriter, r *http.Request) (store.TaskFilter, bool) {
	q := r.URL.Query()
	var filter store.TaskFilter

	if raw := q.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status filter")
			return filter, false
		}
		filter.Status = status
	}
	if raw := q.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid priority filter")
			return filter, false
		}
		filter.Priority = priority
	}
	if raw := q.Get("project_id"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project_id filter")
			return filter, false
		}
		filter.ProjectID = &projectID
	}
	filter.Search = q.Get("search")
	filter.Overdue = q.Get("overdue") == "true"
	filter.Page, filter.PerPage = getPagination(r)

	return filter, true
}
