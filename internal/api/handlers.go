package api

import (
	"errors"

	"github.com/terraincognita07/screenbattle/internal/i18n"
	"github.com/terraincognita07/screenbattle/internal/services"
	"go.uber.org/zap"
)

func NewHandler(game *services.GameService, documents services.DocumentReader, i18nManager *i18n.Manager, logger *zap.Logger, staticDir string) (*Handler, error) {
	if game == nil {
		return nil, errors.New("game service is required")
	}
	if documents == nil {
		return nil, errors.New("document reader is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		game:      game,
		documents: documents,
		i18n:      i18nManager,
		logger:    logger,
		staticDir: staticDir,
	}, nil
}
