package api

import (
	"log/slog"
	"net/http"

	"taskboard/internal/api/shared"
	"taskboard/internal/domain"
	"taskboard/internal/store"
)

// TagHandler handles tag listing, creation and deletion requests.
type TagHandler struct {
	tagStore store.TagStore
	logger   *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagStore store.TagStore, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagStore: tagStore,
		logger:   logger.With("component", "tag_handler"),
	}
}

// ListTags handles GET /api/v1/tags requests.
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	tags, err := h.tagStore.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		NewListResponse("tags", tags, len(tags), 1, 0))
}

// CreateTag handles POST /api/v1/tags requests.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req CreateTagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tag, err := domain.NewTag(req.Name, req.Color)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.tagStore.Create(r.Context(), tag); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated,
		NewMutationResponse("Tag created", "tag", tag))
}

// DeleteTag handles DELETE /api/v1/tags/{id} requests.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagStore.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Tag deleted",
	})
}
