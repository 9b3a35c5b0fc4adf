package api

import (
	"log/slog"
	"net/http"

	"taskboard/internal/api/shared"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// AnalyticsHandler serves the dashboard aggregate and the productivity series.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger.With("component", "analytics_handler"),
	}
}

// Dashboard handles GET /api/v1/analytics/dashboard requests. Responses may
// be up to the cache TTL stale.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.analyticsService.Dashboard(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Productivity handles GET /api/v1/analytics/productivity requests.
func (h *AnalyticsHandler) Productivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	counts, err := h.analyticsService.Productivity(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if counts == nil {
		counts = []store.DailyCount{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"daily_completed": counts,
	})
}
