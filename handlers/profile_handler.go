package handlers

import (
	"github.com/anjiri1684/appointment_booking/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.Users.Get(c.UserContext(), userID)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req services.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return h.invalid(c, err)
	}

	user, err := h.Users.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(user)
}
