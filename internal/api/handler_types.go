package api

import (
	"github.com/terraincognita07/screenbattle/internal/i18n"
	"github.com/terraincognita07/screenbattle/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	game      *services.GameService
	documents services.DocumentReader
	i18n      *i18n.Manager
	logger    *zap.Logger
	staticDir string
}

type screenTimePayload struct {
	Date    string `json:"date"`
	Minutes any    `json:"minutes"`
}

type goalsPayload struct {
	Week  string `json:"week"`
	Goals []bool `json:"goals"`
}

// userPatchPayload has no points field, so a client-sent value never reaches
// the stored user.
type userPatchPayload struct {
	Name           *string            `json:"name"`
	Avatar         *string            `json:"avatar"`
	DailyLimit     *int               `json:"dailyLimit"`
	WeeklyGoals    *[]string          `json:"weeklyGoals"`
	ScreenTimes    *map[string]int    `json:"screenTimes"`
	GoalsCompleted *map[string][]bool `json:"goalsCompleted"`
}

func (payload userPatchPayload) toPatch() services.UserPatch {
	return services.UserPatch{
		Name:           payload.Name,
		Avatar:         payload.Avatar,
		DailyLimit:     payload.DailyLimit,
		WeeklyGoals:    payload.WeeklyGoals,
		ScreenTimes:    payload.ScreenTimes,
		GoalsCompleted: payload.GoalsCompleted,
	}
}
