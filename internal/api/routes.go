package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
	registerStaticRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/users", handler.ListUsers)
	api.Get("/stats", handler.GetStats)

	user := api.Group("/user/:userId")
	user.Get("", handler.GetUser)
	user.Put("", handler.UpdateUser)
	user.Post("/screentime", handler.RecordScreenTime)
	user.Post("/goals", handler.RecordGoals)
}

func registerStaticRoutes(app *fiber.App, handler *Handler) {
	if handler.staticDir != "" {
		app.Static("/", handler.staticDir)
	}
	app.Get("/*", handler.SPAFallback)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
