package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware picks the response language from ?lang= first and the
// Accept-Language header second.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := strings.TrimSpace(c.Query(languageQueryParam)); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	}

	c.Locals(contextLanguageKey, language)
	c.Set(fiber.HeaderContentLanguage, language)
	return c.Next()
}
