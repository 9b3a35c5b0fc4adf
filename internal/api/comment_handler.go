package api

import (
	"log/slog"
	"net/http"

	"taskboard/internal/api/shared"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// CommentNotifier receives comment change announcements after the store has
// committed the mutation.
type CommentNotifier interface {
	CommentCreated(comment *domain.Comment)
}

// CommentHandler handles comment requests, nested under tasks. Task ownership
// gates every operation: comments on another user's task are unreachable.
type CommentHandler struct {
	commentStore store.CommentStore
	taskService  service.TaskService
	notifier     CommentNotifier
	logger       *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(
	commentStore store.CommentStore,
	taskService service.TaskService,
	notifier CommentNotifier,
	logger *slog.Logger,
) *CommentHandler {
	return &CommentHandler{
		commentStore: commentStore,
		taskService:  taskService,
		notifier:     notifier,
		logger:       logger.With("component", "comment_handler"),
	}
}

// ListComments handles GET /api/v1/tasks/{id}/comments requests.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.taskService.GetTask(r.Context(), userID, taskID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	comments, err := h.commentStore.ListByTask(r.Context(), taskID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		NewListResponse("comments", comments, len(comments), 1, 0))
}

// CreateComment handles POST /api/v1/tasks/{id}/comments requests.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := h.taskService.GetTask(r.Context(), userID, taskID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	comment, err := domain.NewComment(taskID, userID, req.Text)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.commentStore.Create(r.Context(), comment); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.notifier.CommentCreated(comment)
	shared.RespondWithJSON(w, r, http.StatusCreated,
		NewMutationResponse("Comment added", "comment", comment))
}

// DeleteComment handles DELETE /api/v1/comments/{id} requests. Only the
// comment's author may delete it.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.commentStore.Delete(r.Context(), userID, id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Comment deleted",
	})
}
