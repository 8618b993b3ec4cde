package handlers

import (
	"time"

	"github.com/anjiri1684/appointment_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SlotResponse struct {
	ID    uuid.UUID `json:"id"`
	Start string    `json:"start"`
	End   string    `json:"end"`
}

func (h *Handler) ListServices(c *fiber.Ctx) error {
	list, err := h.Catalog.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) GetService(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrServiceNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	svc, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(svc)
}

// GetFreeSlots lists bookable slots of a service as RFC 3339 instants.
func (h *Handler) GetFreeSlots(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrServiceNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	slots, err := h.Slots.FreeSlots(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}

	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			ID:    s.ID,
			Start: h.format(s.Start),
			End:   h.format(s.End),
		})
	}
	return c.JSON(out)
}

func (h *Handler) format(t time.Time) string {
	if h.Location != nil {
		t = t.In(h.Location)
	}
	return t.Format(time.RFC3339)
}
