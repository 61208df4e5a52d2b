package handler

import (
	"context"

	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/internal/pkg/serverutils"
	"career-assistant-be/internal/session"
	internalWS "career-assistant-be/internal/websocket"
	"career-assistant-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// EventHandler upgrades authenticated requests to the push channel that
// carries session events to the browser.
type EventHandler struct {
	hub      *internalWS.Hub
	sessions SnapshotSource
	logger   logger.ILogger
}

// SnapshotSource supplies the state a fresh connection starts from.
type SnapshotSource interface {
	State(ctx context.Context, userID string) (*session.Snapshot, error)
}

func NewEventHandler(hub *internalWS.Hub, sessions SnapshotSource, log logger.ILogger) *EventHandler {
	return &EventHandler{
		hub:      hub,
		sessions: sessions,
		logger:   log,
	}
}

// greeting encodes the current session so a reconnecting tab can resync
// without polling. Failures only cost the greeting.
func (h *EventHandler) greeting(ctx context.Context, userID string) []byte {
	if h.sessions == nil {
		return nil
	}
	snapshot, err := h.sessions.State(ctx, userID)
	if err != nil {
		h.logger.Warn("EventHandler", "Snapshot unavailable", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil
	}
	data, err := events.Marshal(events.New(events.TypeSessionSnapshot, userID, map[string]interface{}{"state": snapshot}))
	if err != nil {
		return nil
	}
	return data
}

// ServeWs handles websocket requests from the peer.
func (h *EventHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on a websocket handshake, so the query
	// parameter comes first.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c.Get("Authorization"))
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	userID, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("EventHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		greeting := h.greeting(c.UserContext(), userID)
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("EventHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID, greeting)
			h.logger.Info("EventHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *EventHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/events/v1/ws", h.ServeWs)
}
