package routes

import (
	"time"

	"github.com/anjiri1684/appointment_booking/handlers"
	"github.com/anjiri1684/appointment_booking/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppConfig struct {
	Timezone          string
	BookingRatePerMin int
	AccessLog         bool
}

// NewApp builds the fiber application with the standard middleware stack and
// every route registered.
func NewApp(h *handlers.Handler, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Appointment Booking",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   cfg.Timezone,
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(middleware.Metrics())

	Setup(app, h, cfg.BookingRatePerMin)
	return app
}
