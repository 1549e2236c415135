package api

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.localizedError(c, fiber.StatusNotFound, messageNotFound)
}

// SPAFallback serves index.html for any unmatched GET outside /api so the
// single-page client can resolve its own routes.
func (handler *Handler) SPAFallback(c *fiber.Ctx) error {
	if isAPIPath(c.Path()) || acceptsJSON(c) || handler.staticDir == "" {
		return handler.NotFound(c)
	}

	index := filepath.Join(handler.staticDir, "index.html")
	if info, err := os.Stat(index); err != nil || info.IsDir() {
		return handler.NotFound(c)
	}
	return c.SendFile(index)
}
