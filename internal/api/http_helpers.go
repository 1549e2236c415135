package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/screenbattle/internal/services"
	"go.uber.org/zap"
)

const (
	messageInternal       = "error.internal"
	messageSaveFailed     = "error.save_failed"
	messageUserNotFound   = "error.user_not_found"
	messageInvalidPayload = "error.invalid_payload"
	messageNotFound       = "error.not_found"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, key string) error {
	return apiError(c, status, handler.translate(c, key))
}

func (handler *Handler) validationError(c *fiber.Ctx, validationErr *services.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": handler.translate(c, "error."+validationErr.Code),
		"field": validationErr.Field,
		"code":  validationErr.Code,
	})
}

// respondError maps service errors onto HTTP responses. failureKey is the
// message used for anything unexpected; the cause only goes to the log.
func (handler *Handler) respondError(c *fiber.Ctx, err error, failureKey string) error {
	if validationErr, ok := services.AsValidationError(err); ok {
		return handler.validationError(c, validationErr)
	}
	if errors.Is(err, services.ErrUserNotFound) {
		return handler.localizedError(c, fiber.StatusNotFound, messageUserNotFound)
	}

	handler.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return handler.localizedError(c, fiber.StatusInternalServerError, failureKey)
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), fiber.MIMEApplicationJSON)
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
