package routes

import (
	"github.com/anjiri1684/appointment_booking/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api/v1")

	api.Get("/locales/:lang", handlers.GetLocale)

	api.Get("/services", h.ListServices)
	api.Get("/services/:id", h.GetService)
	api.Get("/services/:id/slots", h.GetFreeSlots)
}
