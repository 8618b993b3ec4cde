package routes

import (
	"github.com/anjiri1684/appointment_booking/handlers"
	"github.com/anjiri1684/appointment_booking/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api/v1")

	// Registered ahead of the admin group: the socket authenticates with its
	// first frame, not a header.
	api.Use("/admin/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/admin/ws", websocket.New(h.ServeAdminWs))

	admin := api.Group("/admin", middleware.Protected(h.JWTSecret), middleware.AdminRequired())

	admin.Get("/dashboard", h.GetDashboard)

	reservations := admin.Group("/reservations")
	reservations.Get("", h.AdminListReservations)
	reservations.Post("/:id/approve", h.ApproveReservation)
	reservations.Post("/:id/reject", h.RejectReservation)

	services := admin.Group("/services")
	services.Get("", h.AdminListServices)
	services.Post("", h.AdminCreateService)
	services.Put("/:id", h.AdminUpdateService)
	services.Delete("/:id", h.AdminDeleteService)

	slots := admin.Group("/slots")
	slots.Get("", h.AdminListSlots)
	slots.Get("/candidates", h.GetSlotCandidates)
	slots.Post("", h.AdminCreateSlot)
	slots.Get("/:id", h.AdminGetSlot)
	slots.Put("/:id", h.AdminUpdateSlot)
	slots.Delete("/:id", h.AdminDeleteSlot)
}
