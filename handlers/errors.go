package handlers

import (
	"errors"

	"github.com/anjiri1684/appointment_booking/services"
	"github.com/gofiber/fiber/v2"
)

// respond maps domain errors to HTTP responses. Anything unrecognised goes to
// the app ErrorHandler as a 500.
func (h *Handler) respond(c *fiber.Ctx, err error) error {
	var fe *services.FieldError
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{fe.Field: h.t(fe.Key, fe.Args...)},
		})
	}

	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		return h.fail(c, fiber.StatusNotFound, "service_not_found")
	case errors.Is(err, services.ErrSlotNotFound):
		return h.fail(c, fiber.StatusNotFound, "slot_not_found")
	case errors.Is(err, services.ErrReservationNotFound):
		return h.fail(c, fiber.StatusNotFound, "reservation_not_found")
	case errors.Is(err, services.ErrSlotConflict):
		return h.fail(c, fiber.StatusConflict, "slot_conflict")
	case errors.Is(err, services.ErrInvalidTransition):
		return h.fail(c, fiber.StatusConflict, "invalid_transition")
	case errors.Is(err, services.ErrServiceInUse):
		return h.fail(c, fiber.StatusConflict, "service_in_use")
	case errors.Is(err, services.ErrSlotInUse):
		return h.fail(c, fiber.StatusConflict, "slot_in_use")
	case errors.Is(err, services.ErrUserNotFound):
		return h.fail(c, fiber.StatusNotFound, "user_not_found")
	case errors.Is(err, services.ErrInvalidCredentials):
		return h.fail(c, fiber.StatusUnauthorized, "invalid_credentials")
	}
	return err
}

func (h *Handler) fail(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": h.t(key)})
}

func (h *Handler) badBody(c *fiber.Ctx) error {
	return h.fail(c, fiber.StatusBadRequest, "invalid_body")
}

func (h *Handler) invalid(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErrors(err, h.Lang)})
}

// ErrorHandler is the fiber.Config ErrorHandler; it logs and renders
// unexpected failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		logError(c, err)
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}
