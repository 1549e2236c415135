package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	if _, err := handler.documents.Load(); err != nil {
		handler.logger.Error("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
