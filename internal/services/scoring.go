package services

import (
	"sort"

	"github.com/terraincognita07/screenbattle/internal/models"
)

const Tie = "tie"

// ComputePoints awards one point per day of the week whose recorded screen
// time stays within the daily limit, plus one per completed weekly goal.
func ComputePoints(user models.User, week Week) int {
	points := 0
	for _, date := range week.Dates {
		minutes, recorded := user.ScreenTimes[date]
		if recorded && minutes <= user.DailyLimit {
			points++
		}
	}
	for _, completed := range user.GoalsCompleted[week.Key] {
		if completed {
			points++
		}
	}
	return points
}

func WeekScreenTime(user models.User, week Week) int {
	total := 0
	for _, date := range week.Dates {
		total += user.ScreenTimes[date]
	}
	return total
}

// WeeklyLeaders returns the ids sharing the lowest weekly screen time, sorted.
func WeeklyLeaders(users map[string]models.User, week Week) []string {
	userIDs := sortedUserIDs(users)
	leaders := make([]string, 0, len(userIDs))
	lowest := 0
	for _, userID := range userIDs {
		total := WeekScreenTime(users[userID], week)
		switch {
		case len(leaders) == 0 || total < lowest:
			lowest = total
			leaders = append(leaders[:0], userID)
		case total == lowest:
			leaders = append(leaders, userID)
		}
	}
	return leaders
}

// ComputeWeeklyWinner returns the id with strictly the lowest screen time over
// the week, or Tie when the lowest total is shared.
func ComputeWeeklyWinner(users map[string]models.User, week Week) string {
	leaders := WeeklyLeaders(users, week)
	if len(leaders) != 1 {
		return Tie
	}
	return leaders[0]
}

// ApplyWinnerBonus adds one point to the weekly winner, or to every user
// sharing the lowest total on a tie, and returns the winner.
func ApplyWinnerBonus(points map[string]int, users map[string]models.User, week Week) string {
	leaders := WeeklyLeaders(users, week)
	for _, userID := range leaders {
		points[userID]++
	}
	if len(leaders) != 1 {
		return Tie
	}
	return leaders[0]
}

func ComputeAllPoints(users map[string]models.User, week Week) map[string]int {
	points := make(map[string]int, len(users))
	for userID, user := range users {
		points[userID] = ComputePoints(user, week)
	}
	return points
}

func sortedUserIDs(users map[string]models.User) []string {
	userIDs := make([]string, 0, len(users))
	for userID := range users {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	return userIDs
}
