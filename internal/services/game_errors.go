package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWriteQueueClosed = errors.New("write queue closed")
)

const (
	ValidationInvalidDate       = "invalid_date"
	ValidationDateOutsideGame   = "date_outside_game"
	ValidationInvalidMinutes    = "invalid_minutes"
	ValidationInvalidWeek       = "invalid_week"
	ValidationInvalidDailyLimit = "invalid_daily_limit"
	ValidationInvalidGoals      = "invalid_goals"
)

// ValidationError rejects client input before anything is written.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Message)
}

func newValidationError(field string, code string, message string) error {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
