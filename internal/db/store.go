package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/screenbattle/internal/models"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

var ErrDocumentMissing = errors.New("document not initialized")

// Store persists the whole Document. There is no field-level update: callers
// read, modify and write back the full document.
type Store interface {
	Exists() (bool, error)
	Load() (models.Document, error)
	Save(document models.Document) error
}

type StorageError struct {
	Op  string
	Err error
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", err.Op, err.Err)
}

func (err *StorageError) Unwrap() error {
	return err.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsStorageError(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// OpenStore builds the configured backend. The returned close func releases
// any underlying handles and is safe to call for every driver.
func OpenStore(driver string, filePath string, sqlitePath string) (Store, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverFile:
		return NewFileStore(filePath), func() error { return nil }, nil
	case DriverSQLite:
		database, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := NewDocumentRepository(database)
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
