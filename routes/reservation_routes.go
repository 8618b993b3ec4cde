package routes

import (
	"github.com/anjiri1684/appointment_booking/handlers"
	"github.com/anjiri1684/appointment_booking/locales"
	"github.com/anjiri1684/appointment_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReservationRoutes(app *fiber.App, h *handlers.Handler, bookingRatePerMin int) {
	api := app.Group("/api/v1")
	protected := middleware.Protected(h.JWTSecret)
	limiter := middleware.RateLimit(bookingRatePerMin, func(*fiber.Ctx) string {
		return locales.T(h.Lang, "too_many_requests")
	})

	api.Post("/services/:id/reservations", protected, limiter, h.CreateReservation)

	reservations := api.Group("/reservations", protected)
	reservations.Get("/me", h.GetMyReservations)
	reservations.Get("/:id", h.GetReservation)
	reservations.Put("/:id", limiter, h.UpdateReservation)
	reservations.Post("/:id/cancel", h.CancelReservation)
}
