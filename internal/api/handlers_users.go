package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/screenbattle/internal/services"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.game.ListUsers(c.UserContext())
	if err != nil {
		return handler.respondError(c, err, messageInternal)
	}
	return c.JSON(users)
}

func (handler *Handler) GetUser(c *fiber.Ctx) error {
	user, err := handler.game.GetUser(c.Params("userId"))
	if err != nil {
		return handler.respondError(c, err, messageInternal)
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	payload := userPatchPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, messageInvalidPayload)
	}

	user, err := handler.game.UpdateUser(c.UserContext(), c.Params("userId"), payload.toPatch())
	if err != nil {
		return handler.respondError(c, err, messageSaveFailed)
	}
	return c.JSON(user)
}

func (handler *Handler) RecordScreenTime(c *fiber.Ctx) error {
	payload := screenTimePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, messageInvalidPayload)
	}

	minutes, err := services.ParseMinutes(payload.Minutes)
	if err != nil {
		return handler.respondError(c, err, messageSaveFailed)
	}
	if err := handler.game.RecordScreenTime(c.UserContext(), c.Params("userId"), payload.Date, minutes); err != nil {
		return handler.respondError(c, err, messageSaveFailed)
	}
	return c.JSON(fiber.Map{"success": true, "message": handler.translate(c, "success.screentime_recorded")})
}

func (handler *Handler) RecordGoals(c *fiber.Ctx) error {
	payload := goalsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, messageInvalidPayload)
	}

	if err := handler.game.RecordGoals(c.UserContext(), c.Params("userId"), payload.Week, payload.Goals); err != nil {
		return handler.respondError(c, err, messageSaveFailed)
	}
	return c.JSON(fiber.Map{"success": true, "message": handler.translate(c, "success.goals_updated")})
}
