package handler

import (
	"doc-templates-be/internal/pkg/logger"
	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/repository/memory"
	internalWS "doc-templates-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// NoticeHandler streams session notices over a websocket.
type NoticeHandler struct {
	sessions *memory.SessionRepository
	hub      *internalWS.Hub
	logger   logger.ILogger
}

func NewNoticeHandler(sessions *memory.SessionRepository, hub *internalWS.Hub, log logger.ILogger) *NoticeHandler {
	return &NoticeHandler{
		sessions: sessions,
		hub:      hub,
		logger:   log,
	}
}

func (h *NoticeHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/ws/sessions/:id", h.ServeWs)
}

// ServeWs upgrades the request and attaches it to the session's notices.
// The session id in the path is the only credential, same as the REST routes.
func (h *NoticeHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}
	if _, ok := h.sessions.Get(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NoticeHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("NoticeHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
