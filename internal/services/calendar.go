package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/screenbattle/internal/models"
)

const daysPerWeek = 7

type Week struct {
	Number int
	Key    string
	Dates  []string
}

// GameCalendar splits the game period into consecutive 7-day windows starting
// on the start date. The last window is clipped at the end date.
type GameCalendar struct {
	startDate string
	endDate   string
	weeks     []Week
}

func NewGameCalendar(settings models.GameSettings) (GameCalendar, error) {
	start, end, err := settings.Bounds()
	if err != nil {
		return GameCalendar{}, err
	}

	year := start.Year()
	weeks := make([]Week, 0)
	for weekStart := start; !weekStart.After(end); weekStart = weekStart.AddDate(0, 0, daysPerWeek) {
		number := len(weeks) + 1
		dates := make([]string, 0, daysPerWeek)
		for offset := 0; offset < daysPerWeek; offset++ {
			day := weekStart.AddDate(0, 0, offset)
			if day.After(end) {
				break
			}
			dates = append(dates, day.Format(models.DateLayout))
		}
		weeks = append(weeks, Week{
			Number: number,
			Key:    weekKey(year, number),
			Dates:  dates,
		})
	}

	return GameCalendar{
		startDate: start.Format(models.DateLayout),
		endDate:   end.Format(models.DateLayout),
		weeks:     weeks,
	}, nil
}

func DefaultGameCalendar() GameCalendar {
	calendar, err := NewGameCalendar(models.SeedDocument().GameSettings)
	if err != nil {
		panic(fmt.Sprintf("default game settings are invalid: %v", err))
	}
	return calendar
}

func weekKey(year int, number int) string {
	return fmt.Sprintf("%d-W%d", year, number)
}

func (calendar GameCalendar) WeekCount() int {
	return len(calendar.weeks)
}

func (calendar GameCalendar) Weeks() []Week {
	result := make([]Week, len(calendar.weeks))
	copy(result, calendar.weeks)
	return result
}

func (calendar GameCalendar) Lookup(number int) (Week, bool) {
	if number < 1 || number > len(calendar.weeks) {
		return Week{}, false
	}
	return calendar.weeks[number-1], true
}

// Week returns the requested window, falling back to the first one for
// numbers outside the game.
func (calendar GameCalendar) Week(number int) Week {
	if week, ok := calendar.Lookup(number); ok {
		return week
	}
	return calendar.weeks[0]
}

func (calendar GameCalendar) Contains(date string) bool {
	return date >= calendar.startDate && date <= calendar.endDate
}

func (calendar GameCalendar) WeekNumberForDate(date string) (int, bool) {
	if !calendar.Contains(date) {
		return 0, false
	}
	for _, week := range calendar.weeks {
		last := week.Dates[len(week.Dates)-1]
		if date <= last {
			return week.Number, true
		}
	}
	return 0, false
}

func (calendar GameCalendar) StartDate() string {
	return calendar.startDate
}

func (calendar GameCalendar) EndDate() string {
	return calendar.endDate
}

// DateAtLocation truncates value to the calendar day it falls on in location.
func DateAtLocation(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(models.DateLayout)
}
