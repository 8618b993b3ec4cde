package routes

import (
	"github.com/anjiri1684/appointment_booking/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup registers every route of the API on app.
func Setup(app *fiber.App, h *handlers.Handler, bookingRatePerMin int) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	PublicRoutes(app, h)
	AuthRoutes(app, h)
	ProfileRoutes(app, h)
	ReservationRoutes(app, h, bookingRatePerMin)
	AdminRoutes(app, h)
}
