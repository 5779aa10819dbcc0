package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/attendo/internal/models"
)

const datasetVersion = 1

// JSONStore keeps a whole dataset in one JSON file.
type JSONStore struct {
	path string
	data *models.Dataset
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.data = &models.Dataset{Version: datasetVersion}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'attendo init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	ds, err := DecodeDataset(data)
	if err != nil {
		return err
	}
	s.data = &ds
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// Import replaces the stored dataset. Readers opened before keep their snapshot.
func (s *JSONStore) Import(ds models.Dataset) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	ds.Version = datasetVersion
	s.data = &ds
	return s.save()
}

func (s *JSONStore) BeginRead() (Reader, error) {
	if s.data == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return NewDatasetReader(*s.data), nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// DecodeDataset parses a dataset document. Records use the JSON shapes of the models package.
func DecodeDataset(data []byte) (models.Dataset, error) {
	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if ds.Version > datasetVersion {
		return models.Dataset{}, fmt.Errorf("dataset version %d is newer than supported version %d", ds.Version, datasetVersion)
	}
	return ds, nil
}

// ReadDatasetFile loads a dataset document from disk.
func ReadDatasetFile(path string) (models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}
	return DecodeDataset(data)
}
