package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
)

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.cfg.OriginAllowed(r.Header.Get("Origin"))
		},
	}
}

// @Summary Realtime event stream
// @Description Websocket: admins receive admin-room events, tourists their own alert updates.
// @Description Messages are {"event": "...", "data": {...}}.
// @Tags Realtime
// @Param token query string true "JWT"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} Response "Invalid token"
// @Router /ws [get]
func (h *Handler) serveWS(c *gin.Context) {
	log := h.logger.WithField("method", "serveWS")

	claims, err := h.tokens.Parse(c.Query("token"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid token")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid token")
		return
	}

	room := realtime.TouristRoom(userID)
	if models.IsAdminRole(claims.Role) {
		room = realtime.AdminRoom
	}

	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	log.WithField("user_id", userID).WithField("room", room).Info("Websocket client connected")
	h.hub.Serve(conn, room)
	log.WithField("user_id", userID).Info("Websocket client disconnected")
}
