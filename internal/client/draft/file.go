// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the draft as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore stores the draft as "<dir>/hero-draft.json".
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}
}

// DefaultDir is the per-user config directory for heroctl.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("draft: locate config dir: %w", err)
	}
	return filepath.Join(base, "heroctl"), nil
}

// Path returns the draft file location.
func (store *FileStore) Path() string {
	return store.path
}

func (store *FileStore) Load(ctx context.Context) (Draft, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Draft{}, nil
	}
	if err != nil {
		return Draft{}, fmt.Errorf("draft: read %s: %w", store.path, err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("draft: decode %s: %w", store.path, err)
	}
	return draft, nil
}

// Save writes the draft atomically through a temporary file and a rename.
func (store *FileStore) Save(ctx context.Context, draft Draft) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("draft: create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}

	temp, err := os.CreateTemp(dir, StorageKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("draft: create temp file: %w", err)
	}

	_, err = temp.Write(data)
	if closeErr := temp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(temp.Name(), store.path)
	}
	if err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("draft: write %s: %w", store.path, err)
	}
	return nil
}

func (store *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("draft: remove %s: %w", store.path, err)
	}
	return nil
}
