package handlers

import (
	"github.com/anjiri1684/appointment_booking/metrics"
	"github.com/anjiri1684/appointment_booking/middleware"
	"github.com/anjiri1684/appointment_booking/models"
	"github.com/anjiri1684/appointment_booking/utils"
	"github.com/anjiri1684/appointment_booking/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// ServeAdminWs streams reservation events to an administrator. The first
// frame must be {"type":"auth","token":"<jwt>"}.
func (h *Handler) ServeAdminWs(c *websocketcontrib.Conn) {
	log := utils.GetLogger()
	defer c.Close()

	var msg authMessage
	if err := c.ReadJSON(&msg); err != nil || msg.Type != "auth" {
		log.Warn("WebSocket auth failed: invalid or missing auth message", zap.Error(err))
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		return
	}

	claims, err := middleware.ParseToken(h.JWTSecret, msg.Token)
	if err != nil {
		log.Warn("WebSocket auth failed: invalid token", zap.Error(err))
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		return
	}
	userID, role, ok := middleware.ParseClaims(claims)
	if !ok || role != models.RoleAdmin {
		_ = c.WriteJSON(fiber.Map{"error": "Forbidden: Admin access required"})
		return
	}

	if err := c.WriteJSON(fiber.Map{"type": "ready"}); err != nil {
		return
	}

	// From here on only the hub writes to the connection.
	client := &websocket.Client{UserID: userID, Conn: c}
	h.Hub.Register(client)
	metrics.WebsocketClients.Inc()
	defer func() {
		h.Hub.Unregister(client)
		metrics.WebsocketClients.Dec()
	}()

	// Admins only listen; reading drains control frames and detects close.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Debug("WebSocket read error", zap.String("user_id", userID.String()), zap.Error(err))
			}
			return
		}
	}
}
