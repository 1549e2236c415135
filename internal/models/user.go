package models

import "encoding/json"

// User is one player. Points is derived from ScreenTimes and GoalsCompleted and is
// overwritten whenever the full user list is served.
type User struct {
	Name           string            `json:"name"`
	Avatar         string            `json:"avatar"`
	DailyLimit     int               `json:"dailyLimit"`
	WeeklyGoals    []string          `json:"weeklyGoals"`
	Points         int               `json:"points"`
	ScreenTimes    map[string]int    `json:"screenTimes"`
	GoalsCompleted map[string][]bool `json:"goalsCompleted"`
}

func (user User) Clone() User {
	clone := user
	if user.WeeklyGoals != nil {
		clone.WeeklyGoals = append([]string(nil), user.WeeklyGoals...)
	}
	if user.ScreenTimes != nil {
		clone.ScreenTimes = make(map[string]int, len(user.ScreenTimes))
		for date, minutes := range user.ScreenTimes {
			clone.ScreenTimes[date] = minutes
		}
	}
	if user.GoalsCompleted != nil {
		clone.GoalsCompleted = make(map[string][]bool, len(user.GoalsCompleted))
		for week, goals := range user.GoalsCompleted {
			clone.GoalsCompleted[week] = append([]bool(nil), goals...)
		}
	}
	return clone
}

func (user *User) Normalize() {
	if user.WeeklyGoals == nil {
		user.WeeklyGoals = []string{}
	}
	if user.ScreenTimes == nil {
		user.ScreenTimes = map[string]int{}
	}
	if user.GoalsCompleted == nil {
		user.GoalsCompleted = map[string][]bool{}
	}
}

// UnmarshalJSON drops null screen-time entries. Older documents stored
// unparseable minutes as null, and those days count as not recorded.
func (user *User) UnmarshalJSON(content []byte) error {
	type userFields User
	decoded := struct {
		*userFields
		ScreenTimes map[string]*int `json:"screenTimes"`
	}{userFields: (*userFields)(user)}
	if err := json.Unmarshal(content, &decoded); err != nil {
		return err
	}

	user.ScreenTimes = nil
	if decoded.ScreenTimes == nil {
		return nil
	}
	user.ScreenTimes = make(map[string]int, len(decoded.ScreenTimes))
	for date, minutes := range decoded.ScreenTimes {
		if minutes != nil {
			user.ScreenTimes[date] = *minutes
		}
	}
	return nil
}
