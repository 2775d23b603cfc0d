package events

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/roach88/nyx/internal/infrastructure/auth"
	"github.com/roach88/nyx/internal/infrastructure/json"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/infrastructure/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single-tenant service behind the dashboard; origin checks are the
	// CORS middleware's problem.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub    *ws.Hub
	logger logging.Logger
}

func NewHandler(hub *ws.Hub, logger logging.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// SubscribeHandler upgrades the connection and streams record-change
// events for the authenticated user.
func (h *Handler) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		json.WriteUnauthorizedError(w, errors.New("unauthorized"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(logging.General, logging.ExternalService, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.UserId:       userID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, userID)
	h.hub.Register() <- client

	go client.WriteLoop()
	go client.ReadLoop(h.hub)
}
