package services

import "time"

type WeekResolver interface {
	CurrentWeek(calendar GameCalendar) int
}

// FixedWeek always reports the same week, which freezes the game on it.
type FixedWeek int

func (week FixedWeek) CurrentWeek(GameCalendar) int {
	return int(week)
}

// ClockWeekResolver maps today's date to the game window containing it. Days
// before the game resolve to the first week and days after it to the last.
type ClockWeekResolver struct {
	now      func() time.Time
	location *time.Location
}

func NewClockWeekResolver(now func() time.Time, location *time.Location) *ClockWeekResolver {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &ClockWeekResolver{now: now, location: location}
}

func (resolver *ClockWeekResolver) CurrentWeek(calendar GameCalendar) int {
	today := DateAtLocation(resolver.now(), resolver.location)
	if number, ok := calendar.WeekNumberForDate(today); ok {
		return number
	}
	if today < calendar.StartDate() {
		return 1
	}
	return calendar.WeekCount()
}
