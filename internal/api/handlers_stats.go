package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/screenbattle/internal/services"
)

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	weekNumber := 0
	if raw := strings.TrimSpace(c.Query("week")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return handler.validationError(c, &services.ValidationError{
				Field:   "week",
				Code:    services.ValidationInvalidWeek,
				Message: "week must be a positive whole number",
			})
		}
		weekNumber = parsed
	}

	stats, err := handler.game.Stats(weekNumber)
	if err != nil {
		return handler.respondError(c, err, messageInternal)
	}
	return c.JSON(statsResponse(stats))
}

// statsResponse keeps the flat "<userId>Points" keys next to the points map so
// existing dashboards reading aiziPoints/orfeusPoints keep working.
func statsResponse(stats services.WeeklyStats) fiber.Map {
	response := fiber.Map{
		"currentWeek":  stats.Week.Number,
		"weekKey":      stats.Week.Key,
		"weekDates":    stats.Week.Dates,
		"weeklyWinner": stats.Winner,
		"points":       stats.Points,
		"minutes":      stats.Minutes,
	}
	for userID, points := range stats.Points {
		response[userID+"Points"] = points
	}
	return response
}
