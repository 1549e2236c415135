package services

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/screenbattle/internal/models"
)

const maxMinutesPerDay = 24 * 60

var weekKeyPattern = regexp.MustCompile(`^\d{4}-W\d{1,2}$`)

// UserPatch carries the user fields a client may overwrite. Nil means "keep".
// Points is deliberately absent: it is always derived.
type UserPatch struct {
	Name           *string
	Avatar         *string
	DailyLimit     *int
	WeeklyGoals    *[]string
	ScreenTimes    *map[string]int
	GoalsCompleted *map[string][]bool
}

func (patch UserPatch) Validate() error {
	if patch.DailyLimit != nil && (*patch.DailyLimit < 0 || *patch.DailyLimit > maxMinutesPerDay) {
		return newValidationError("dailyLimit", ValidationInvalidDailyLimit, "daily limit must be between 0 and 1440 minutes")
	}
	if patch.ScreenTimes != nil {
		for date, minutes := range *patch.ScreenTimes {
			if _, err := ParseDate(date); err != nil {
				return err
			}
			if err := ValidateMinutes(minutes); err != nil {
				return err
			}
		}
	}
	if patch.GoalsCompleted != nil {
		for week := range *patch.GoalsCompleted {
			if err := ValidateWeekKey(week); err != nil {
				return err
			}
		}
	}
	return nil
}

func (patch UserPatch) Apply(user *models.User) {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.DailyLimit != nil {
		user.DailyLimit = *patch.DailyLimit
	}
	if patch.WeeklyGoals != nil {
		user.WeeklyGoals = append([]string{}, (*patch.WeeklyGoals)...)
	}
	if patch.ScreenTimes != nil {
		user.ScreenTimes = make(map[string]int, len(*patch.ScreenTimes))
		for date, minutes := range *patch.ScreenTimes {
			user.ScreenTimes[date] = minutes
		}
	}
	if patch.GoalsCompleted != nil {
		user.GoalsCompleted = make(map[string][]bool, len(*patch.GoalsCompleted))
		for week, goals := range *patch.GoalsCompleted {
			user.GoalsCompleted[week] = append([]bool{}, goals...)
		}
	}
	user.Normalize()
}

func ParseDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return "", newValidationError("date", ValidationInvalidDate, "date must use YYYY-MM-DD")
	}
	return parsed.Format(models.DateLayout), nil
}

// ParseMinutes accepts a JSON number or a numeric string holding a whole
// number of minutes. Anything else is rejected instead of coerced.
func ParseMinutes(raw any) (int, error) {
	invalid := newValidationError("minutes", ValidationInvalidMinutes, "minutes must be a whole number between 0 and 1440")

	var minutes int
	switch value := raw.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
			return 0, invalid
		}
		if value < math.MinInt32 || value > math.MaxInt32 {
			return 0, invalid
		}
		minutes = int(value)
	case int:
		minutes = value
	case json.Number:
		parsed, err := strconv.Atoi(value.String())
		if err != nil {
			return 0, invalid
		}
		minutes = parsed
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, invalid
		}
		minutes = parsed
	default:
		return 0, invalid
	}

	if err := ValidateMinutes(minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

func ValidateMinutes(minutes int) error {
	if minutes < 0 || minutes > maxMinutesPerDay {
		return newValidationError("minutes", ValidationInvalidMinutes, "minutes must be a whole number between 0 and 1440")
	}
	return nil
}

func ValidateWeekKey(key string) error {
	if !weekKeyPattern.MatchString(key) {
		return newValidationError("week", ValidationInvalidWeek, "week must look like 2025-W1")
	}
	return nil
}
