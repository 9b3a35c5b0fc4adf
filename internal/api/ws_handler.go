package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"taskboard/internal/api/shared"
	"taskboard/internal/realtime"
	"taskboard/internal/service/auth"
)

// WSHandler upgrades live-update connections and ties their lifecycle to the
// registry: register on upgrade, unregister when the read side ends.
type WSHandler struct {
	registry   *realtime.Registry
	jwtService auth.JWTService
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(registry *realtime.Registry, jwtService auth.JWTService, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		registry:   registry,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With("component", "ws_handler"),
	}
}

// Serve handles GET /ws requests. Browsers cannot set headers on WebSocket
// requests, so the access token arrives as a query parameter.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Missing token")
		return
	}
	claims, err := h.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	channel := realtime.NewWSChannel(conn)
	h.registry.Register(channel)
	h.logger.Info("live-update connection opened", "user_id", claims.UserID)

	go h.drainReads(channel, conn, claims)
}

// drainReads consumes inbound frames until the connection dies. Clients are
// not expected to send anything; reading is what surfaces the close.
func (h *WSHandler) drainReads(channel *realtime.WSChannel, conn *websocket.Conn, claims *auth.Claims) {
	defer func() {
		h.registry.Unregister(channel)
		_ = channel.Close()
		h.logger.Info("live-update connection closed", "user_id", claims.UserID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
