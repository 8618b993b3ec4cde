package handlers

import (
	"time"

	"github.com/anjiri1684/appointment_booking/middleware"
	"github.com/anjiri1684/appointment_booking/services"
	"github.com/anjiri1684/appointment_booking/utils"
	"github.com/anjiri1684/appointment_booking/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	Users        *services.UserService
	Catalog      *services.CatalogService
	Slots        *services.SlotService
	Reservations *services.ReservationService
	Dashboard    *services.DashboardService
	Hub          *websocket.Hub

	JWTSecret string
	TokenTTL  time.Duration
	Lang      string
	Location  *time.Location
}

func (h *Handler) t(key string, args ...any) string {
	return translate(h.Lang, key, args...)
}

func logError(c *fiber.Ctx, err error) {
	utils.GetLogger().Error("request failed",
		zap.Error(err),
		zap.String("path", c.Path()),
		zap.String("method", c.Method()))
}

// paramID parses a uuid route parameter; a malformed id is reported as
// notFound.
func paramID(c *fiber.Ctx, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, _, ok := middleware.CurrentUser(c)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}
