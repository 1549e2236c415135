package api

import "github.com/gofiber/fiber/v2"

const (
	contextLanguageKey = "current_language"
	languageQueryParam = "lang"
)

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(handler.currentLanguage(c), key)
}
