package connect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Marker is the local "connected" hint kept after a successful
// exchange. It is a convenience cache only, the hub's connection row
// is the source of truth.
type Marker struct {
	Email         string    `json:"email"`
	Authenticated bool      `json:"authenticated"`
	Timestamp     time.Time `json:"timestamp"`
}

// MarkerStore persists the marker as a small JSON file.
type MarkerStore struct {
	path string
}

func NewMarkerStore(path string) *MarkerStore {
	return &MarkerStore{
		path: path,
	}
}

func (store *MarkerStore) Save(email string) error {
	marker := Marker{
		Email:         email,
		Authenticated: true,
		Timestamp:     time.Now().UTC(),
	}

	data, err := json.Marshal(marker)

	if err != nil {
		return fmt.Errorf("failed to encode connection marker: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0750); err != nil {
		return fmt.Errorf("failed to create marker directory: %w", err)
	}

	if err := os.WriteFile(store.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write connection marker: %w", err)
	}

	return nil
}

// Read returns the stored marker or nil when none exists. A corrupt
// marker reads as absent and the file is removed, it is never
// surfaced as an error.
func (store *MarkerStore) Read() (*Marker, error) {
	data, err := os.ReadFile(store.path)

	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read connection marker: %w", err)
	}

	var marker Marker

	if err := json.Unmarshal(data, &marker); err != nil {
		os.Remove(store.path)
		return nil, nil
	}

	return &marker, nil
}

func (store *MarkerStore) Clear() error {
	err := os.Remove(store.path)

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear connection marker: %w", err)
	}

	return nil
}
