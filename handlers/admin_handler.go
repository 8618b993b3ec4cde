package handlers

import (
	"errors"
	"strconv"

	"github.com/anjiri1684/appointment_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const adminDashboardPath = "/api/v1/admin/dashboard"

func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.Dashboard.Build(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *Handler) ApproveReservation(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrReservationNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if _, err := h.Reservations.Approve(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.Redirect(adminDashboardPath, fiber.StatusSeeOther)
}

func (h *Handler) RejectReservation(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrReservationNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if _, err := h.Reservations.Reject(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.Redirect(adminDashboardPath, fiber.StatusSeeOther)
}

// AdminListReservations pages through all reservations, newest first.
func (h *Handler) AdminListReservations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	result, err := h.Reservations.ListAll(c.UserContext(), page, 20)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handler) AdminListServices(c *fiber.Ctx) error {
	list, err := h.Catalog.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) AdminCreateService(c *fiber.Ctx) error {
	var req services.ServiceInput
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return h.invalid(c, err)
	}
	svc, err := h.Catalog.Create(c.UserContext(), req)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *Handler) AdminUpdateService(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrServiceNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var req services.ServiceInput
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return h.invalid(c, err)
	}
	svc, err := h.Catalog.Update(c.UserContext(), id, req)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(svc)
}

func (h *Handler) AdminDeleteService(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrServiceNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type SlotRequest struct {
	ServiceID     string `json:"service_id"`
	SlotDate      string `json:"slot_date"`
	GeneratedSlot string `json:"generated_slot"`
	IsActive      *bool  `json:"is_active"`
}

func (r SlotRequest) input() services.SlotInput {
	// A malformed id is treated as missing.
	serviceID, _ := uuid.Parse(r.ServiceID)
	return services.SlotInput{
		ServiceID:     serviceID,
		SlotDate:      r.SlotDate,
		GeneratedSlot: r.GeneratedSlot,
		IsActive:      r.IsActive,
	}
}

func (h *Handler) AdminListSlots(c *fiber.Ctx) error {
	list, err := h.Slots.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) AdminGetSlot(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrSlotNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	slot, err := h.Slots.Get(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(slot)
}

func (h *Handler) AdminCreateSlot(c *fiber.Ctx) error {
	var req SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}
	slot, err := h.Slots.Create(c.UserContext(), req.input())
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

func (h *Handler) AdminUpdateSlot(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrSlotNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var req SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}
	slot, err := h.Slots.Update(c.UserContext(), id, req.input())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(slot)
}

func (h *Handler) AdminDeleteSlot(c *fiber.Ctx) error {
	id, err := paramID(c, "id", services.ErrSlotNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if err := h.Slots.Delete(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type candidateResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GetSlotCandidates proposes free slots for a service and date. Missing
// parameters yield an empty list rather than an error.
func (h *Handler) GetSlotCandidates(c *fiber.Ctx) error {
	rawID, date := c.Query("service_id"), c.Query("slot_date")
	if rawID == "" || date == "" {
		return c.JSON(fiber.Map{"slots": []candidateResponse{}})
	}

	serviceID, err := uuid.Parse(rawID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"slots": []candidateResponse{}, "error": h.t("service_not_found")})
	}

	candidates, err := h.Slots.Candidates(c.UserContext(), serviceID, date)
	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"slots": []candidateResponse{}, "error": h.t("service_not_found")})
	case errors.Is(err, services.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"slots": []candidateResponse{}, "error": h.t("date_invalid")})
	case err != nil:
		return err
	}

	out := make([]candidateResponse, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, candidateResponse{Value: cand.Value, Label: cand.Label})
	}
	return c.JSON(fiber.Map{"slots": out})
}
