package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/screenbattle/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const documentRecordID = 1

type documentRecord struct {
	ID           uint                   `gorm:"primaryKey"`
	Users        map[string]models.User `gorm:"type:text;serializer:json;not null"`
	GameSettings models.GameSettings    `gorm:"type:text;serializer:json;not null"`
	UpdatedAt    time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

// DocumentRepository stores the document as a single SQLite row with JSON columns.
type DocumentRepository struct {
	database *gorm.DB
}

func NewDocumentRepository(database *gorm.DB) *DocumentRepository {
	return &DocumentRepository{database: database}
}

// Close releases the underlying connection pool.
func (repo *DocumentRepository) Close() error {
	sqlDB, err := repo.database.DB()
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	return sqlDB.Close()
}

func (repo *DocumentRepository) Exists() (bool, error) {
	var count int64
	if err := repo.database.Model(&documentRecord{}).Where("id = ?", documentRecordID).Count(&count).Error; err != nil {
		return false, storageError("stat", err)
	}
	return count > 0, nil
}

func (repo *DocumentRepository) Load() (models.Document, error) {
	var record documentRecord
	if err := repo.database.First(&record, documentRecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, storageError("load", ErrDocumentMissing)
		}
		return models.Document{}, storageError("load", err)
	}

	document := models.Document{
		Users:        record.Users,
		GameSettings: record.GameSettings,
	}
	if err := document.Validate(); err != nil {
		return models.Document{}, storageError("decode", err)
	}
	document.Normalize()
	return document, nil
}

func (repo *DocumentRepository) Save(document models.Document) error {
	if err := document.Validate(); err != nil {
		return storageError("encode", err)
	}

	record := documentRecord{
		ID:           documentRecordID,
		Users:        document.Users,
		GameSettings: document.GameSettings,
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		return storageError("save", err)
	}
	return nil
}
