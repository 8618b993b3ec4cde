package handlers

import (
	"errors"

	"github.com/anjiri1684/appointment_booking/metrics"
	"github.com/anjiri1684/appointment_booking/models"
	"github.com/anjiri1684/appointment_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReservationRequest struct {
	SlotID string `json:"slot_id"`
}

func (r ReservationRequest) slotID() uuid.UUID {
	id, err := uuid.Parse(r.SlotID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// CreateReservation books a slot of the service in the URL for the caller.
func (h *Handler) CreateReservation(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	serviceID, err := paramID(c, "id", services.ErrServiceNotFound)
	if err != nil {
		return h.respond(c, err)
	}

	var req ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}

	reservation, err := h.Reservations.Book(c.UserContext(), userID, serviceID, req.slotID())
	if err != nil {
		countRejection(err)
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     h.t("reservation_created"),
		"reservation": reservation,
	})
}

func countRejection(err error) {
	var fe *services.FieldError
	switch {
	case errors.As(err, &fe):
		metrics.BookingRejections.WithLabelValues(fe.Key).Inc()
	case errors.Is(err, services.ErrSlotConflict):
		metrics.BookingRejections.WithLabelValues("conflict").Inc()
	}
}

func (h *Handler) GetMyReservations(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var filter services.ReservationFilter
	if status := models.ReservationStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{"status": h.t("validation_invalid")},
			})
		}
		filter.Status = status
	}
	if raw := c.Query("service"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{"service": h.t("invalid_id")},
			})
		}
		filter.ServiceID = id
	}

	list, err := h.Reservations.ListForUser(c.UserContext(), userID, filter)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) GetReservation(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", services.ErrReservationNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	r, err := h.Reservations.GetForUser(c.UserContext(), userID, id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(r)
}

// UpdateReservation moves a pending reservation to another slot.
func (h *Handler) UpdateReservation(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", services.ErrReservationNotFound)
	if err != nil {
		return h.respond(c, err)
	}

	var req ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}

	r, err := h.Reservations.Reschedule(c.UserContext(), userID, id, req.slotID())
	if err != nil {
		countRejection(err)
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     h.t("reservation_updated"),
		"reservation": r,
	})
}

func (h *Handler) CancelReservation(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", services.ErrReservationNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if _, err := h.Reservations.Cancel(c.UserContext(), userID, id); err != nil {
		return h.respond(c, err)
	}
	return c.Redirect("/api/v1/reservations/me", fiber.StatusSeeOther)
}
