package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/terraincognita07/screenbattle/internal/models"
)

// FileStore keeps the document as an indented JSON file. Saves go through a
// temp file and rename so readers never observe a half-written document.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (store *FileStore) Path() string {
	return store.path
}

func (store *FileStore) Exists() (bool, error) {
	_, err := os.Stat(store.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, storageError("stat", err)
}

func (store *FileStore) Load() (models.Document, error) {
	content, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Document{}, storageError("load", ErrDocumentMissing)
		}
		return models.Document{}, storageError("load", err)
	}

	document, err := DecodeDocument(content)
	if err != nil {
		return models.Document{}, storageError("decode", err)
	}
	return document, nil
}

func (store *FileStore) Save(document models.Document) error {
	content, err := EncodeDocument(document)
	if err != nil {
		return storageError("encode", err)
	}

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return storageError("save", fmt.Errorf("create data directory: %w", err))
	}

	temp, err := os.CreateTemp(directory, "."+filepath.Base(store.path)+"-*.tmp")
	if err != nil {
		return storageError("save", err)
	}
	tempPath := temp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		return storageError("save", err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		return storageError("save", err)
	}
	if err := temp.Close(); err != nil {
		return storageError("save", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		return storageError("save", err)
	}
	committed = true
	return nil
}

func DecodeDocument(content []byte) (models.Document, error) {
	document := models.Document{}
	if err := json.Unmarshal(content, &document); err != nil {
		return models.Document{}, fmt.Errorf("parse document: %w", err)
	}
	if err := document.Validate(); err != nil {
		return models.Document{}, err
	}
	document.Normalize()
	return document, nil
}

func EncodeDocument(document models.Document) ([]byte, error) {
	if err := document.Validate(); err != nil {
		return nil, err
	}
	content, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return append(content, '\n'), nil
}
