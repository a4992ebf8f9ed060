package api

import (
	"github.com/gofiber/fiber/v3"
)

// All feedback API endpoints answer with the same envelope: a "status"
// discriminator plus either "data" or "error". Dashboards key off the
// discriminator, so handlers never emit bare payloads.

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated wraps a freshly stored record in the success envelope
// with a 201 status.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
