package handlers

import (
	"github.com/anjiri1684/appointment_booking/locales"
	"github.com/gofiber/fiber/v2"
)

func GetLocale(c *fiber.Ctx) error {
	data, ok := locales.Raw(c.Params("lang"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Language file not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(data)
}
