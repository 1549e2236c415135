package services

import (
	"context"

	"github.com/terraincognita07/screenbattle/internal/models"
	"go.uber.org/zap"
)

type DocumentReader interface {
	Load() (models.Document, error)
}

type DocumentWriter interface {
	Update(ctx context.Context, mutate func(*models.Document) error) WriteResult
}

type GameService struct {
	documents DocumentReader
	writes    DocumentWriter
	weeks     WeekResolver
	logger    *zap.Logger
}

type WeeklyStats struct {
	Week    Week
	Winner  string
	Points  map[string]int
	Minutes map[string]int
}

func NewGameService(documents DocumentReader, writes DocumentWriter, weeks WeekResolver, logger *zap.Logger) *GameService {
	if weeks == nil {
		weeks = FixedWeek(1)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		documents: documents,
		writes:    writes,
		weeks:     weeks,
		logger:    logger,
	}
}

func (service *GameService) currentWeek(document models.Document) (GameCalendar, Week, error) {
	calendar, err := NewGameCalendar(document.GameSettings)
	if err != nil {
		return GameCalendar{}, Week{}, err
	}
	return calendar, calendar.Week(service.weeks.CurrentWeek(calendar)), nil
}

// ListUsers recomputes every user's points for the current week, adds the
// winner bonus and persists the result through the write queue.
func (service *GameService) ListUsers(ctx context.Context) (map[string]models.User, error) {
	var winner string
	result := service.writes.Update(ctx, func(document *models.Document) error {
		_, week, err := service.currentWeek(*document)
		if err != nil {
			return err
		}

		points := ComputeAllPoints(document.Users, week)
		winner = ApplyWinnerBonus(points, document.Users, week)
		for userID, user := range document.Users {
			user.Points = points[userID]
			document.Users[userID] = user
		}
		return nil
	})
	if result.Err != nil {
		return nil, result.Err
	}

	service.logger.Debug("recomputed points", zap.String("job_id", result.JobID), zap.String("winner", winner))
	return result.Document.Users, nil
}

// GetUser returns the user with freshly computed points. Nothing is persisted.
func (service *GameService) GetUser(userID string) (models.User, error) {
	document, err := service.documents.Load()
	if err != nil {
		return models.User{}, err
	}
	user, ok := document.Users[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	_, week, err := service.currentWeek(document)
	if err != nil {
		return models.User{}, err
	}
	user.Points = ComputePoints(user, week)
	return user, nil
}

func (service *GameService) UpdateUser(ctx context.Context, userID string, patch UserPatch) (models.User, error) {
	if err := patch.Validate(); err != nil {
		return models.User{}, err
	}

	result := service.writes.Update(ctx, func(document *models.Document) error {
		user, ok := document.Users[userID]
		if !ok {
			return ErrUserNotFound
		}
		if patch.ScreenTimes != nil {
			calendar, err := NewGameCalendar(document.GameSettings)
			if err != nil {
				return err
			}
			for date := range *patch.ScreenTimes {
				if !calendar.Contains(date) {
					return newValidationError("screenTimes", ValidationDateOutsideGame, "date is outside the game period")
				}
			}
		}
		patch.Apply(&user)
		document.Users[userID] = user
		return nil
	})
	if result.Err != nil {
		return models.User{}, result.Err
	}
	return result.Document.Users[userID], nil
}

func (service *GameService) RecordScreenTime(ctx context.Context, userID string, date string, minutes int) error {
	normalizedDate, err := ParseDate(date)
	if err != nil {
		return err
	}
	if err := ValidateMinutes(minutes); err != nil {
		return err
	}

	result := service.writes.Update(ctx, func(document *models.Document) error {
		user, ok := document.Users[userID]
		if !ok {
			return ErrUserNotFound
		}
		calendar, err := NewGameCalendar(document.GameSettings)
		if err != nil {
			return err
		}
		if !calendar.Contains(normalizedDate) {
			return newValidationError("date", ValidationDateOutsideGame, "date is outside the game period")
		}

		user.Normalize()
		user.ScreenTimes[normalizedDate] = minutes
		document.Users[userID] = user
		return nil
	})
	return result.Err
}

func (service *GameService) RecordGoals(ctx context.Context, userID string, week string, goals []bool) error {
	if err := ValidateWeekKey(week); err != nil {
		return err
	}
	if goals == nil {
		return newValidationError("goals", ValidationInvalidGoals, "goals must be a list of booleans")
	}

	result := service.writes.Update(ctx, func(document *models.Document) error {
		user, ok := document.Users[userID]
		if !ok {
			return ErrUserNotFound
		}
		user.Normalize()
		user.GoalsCompleted[week] = append([]bool{}, goals...)
		document.Users[userID] = user
		return nil
	})
	return result.Err
}

// Stats reports the requested week, or the current one when weekNumber is 0.
// Points here carry no winner bonus and nothing is persisted.
func (service *GameService) Stats(weekNumber int) (WeeklyStats, error) {
	document, err := service.documents.Load()
	if err != nil {
		return WeeklyStats{}, err
	}

	calendar, week, err := service.currentWeek(document)
	if err != nil {
		return WeeklyStats{}, err
	}
	if weekNumber != 0 {
		requested, ok := calendar.Lookup(weekNumber)
		if !ok {
			return WeeklyStats{}, newValidationError("week", ValidationInvalidWeek, "week is outside the game")
		}
		week = requested
	}

	minutes := make(map[string]int, len(document.Users))
	for userID, user := range document.Users {
		minutes[userID] = WeekScreenTime(user, week)
	}

	return WeeklyStats{
		Week:    week,
		Winner:  ComputeWeeklyWinner(document.Users, week),
		Points:  ComputeAllPoints(document.Users, week),
		Minutes: minutes,
	}, nil
}
