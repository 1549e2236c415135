package models

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrDocumentHasNoUsers   = errors.New("document has no users")
	ErrInvalidGameSettings  = errors.New("invalid game settings")
	ErrInvalidUserReference = errors.New("invalid user entry")
)

// Document is the whole persisted state. Stores always read and write it in one piece.
type Document struct {
	Users        map[string]User `json:"users"`
	GameSettings GameSettings    `json:"gameSettings"`
}

type GameSettings struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (settings GameSettings) Bounds() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, settings.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q", ErrInvalidGameSettings, settings.StartDate)
	}
	end, err := time.Parse(DateLayout, settings.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q", ErrInvalidGameSettings, settings.EndDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date before start date", ErrInvalidGameSettings)
	}
	return start, end, nil
}

func (document Document) Validate() error {
	if len(document.Users) == 0 {
		return ErrDocumentHasNoUsers
	}
	for userID := range document.Users {
		if userID == "" {
			return fmt.Errorf("%w: empty user id", ErrInvalidUserReference)
		}
	}
	if _, _, err := document.GameSettings.Bounds(); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy so a mutation never leaks into another holder's maps.
func (document Document) Clone() Document {
	clone := Document{
		Users:        make(map[string]User, len(document.Users)),
		GameSettings: document.GameSettings,
	}
	for userID, user := range document.Users {
		clone.Users[userID] = user.Clone()
	}
	return clone
}

// Normalize fills nil collections so handlers can write into them directly.
func (document *Document) Normalize() {
	if document.Users == nil {
		document.Users = map[string]User{}
	}
	for userID, user := range document.Users {
		user.Normalize()
		document.Users[userID] = user
	}
}
