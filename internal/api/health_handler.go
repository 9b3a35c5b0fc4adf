package api

import (
	"database/sql"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"taskboard/internal/api/shared"
)

// HealthHandler reports process liveness and dependency reachability.
type HealthHandler struct {
	db  *sql.DB
	rdb goredis.Cmdable
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, rdb goredis.Cmdable) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Health handles GET /health requests. A failing dependency yields 503 but
// still names the healthy ones.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := map[string]string{}

	if err := h.db.PingContext(r.Context()); err != nil {
		checks["postgres"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.rdb.Ping(r.Context()).Err(); err != nil {
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	body := map[string]interface{}{
		"status": "ok",
		"checks": checks,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	shared.RespondWithJSON(w, r, status, body)
}
