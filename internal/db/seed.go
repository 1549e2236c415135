package db

import (
	"github.com/terraincognita07/screenbattle/internal/models"
	"go.uber.org/zap"
)

// EnsureInitialized writes the seed document when nothing has been persisted.
// An existing document is never overwritten.
func EnsureInitialized(store Store, logger *zap.Logger) error {
	exists, err := store.Exists()
	if err != nil {
		return err
	}
	if exists {
		logger.Debug("document already initialized, skipping seed")
		return nil
	}

	seed := models.SeedDocument()
	if err := store.Save(seed); err != nil {
		return err
	}
	logger.Info("seeded document",
		zap.Int("users", len(seed.Users)),
		zap.String("start_date", seed.GameSettings.StartDate),
		zap.String("end_date", seed.GameSettings.EndDate),
	)
	return nil
}
