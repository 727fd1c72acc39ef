// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/heroes/internal/platform/constants"
)

// LocalPersister moves staged files into the publicly served upload directory.
type LocalPersister struct {
	uploadDir string
	publicURL string
}

// NewLocalPersister returns a persister that serves files from uploadDir
// under "<appDomain>/uploads/".
func NewLocalPersister(uploadDir, appDomain string) *LocalPersister {
	return &LocalPersister{
		uploadDir: uploadDir,
		publicURL: strings.TrimRight(appDomain, "/") + constants.UploadsPath,
	}
}

// Persist renames the staged file into the upload directory.
//
// A rename is atomic on the same filesystem: the file is visible either in
// the staging directory or in the upload directory, never half-written.
func (persister *LocalPersister) Persist(ctx context.Context, file StagedFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	destination := filepath.Join(persister.uploadDir, file.Name)
	if err := os.Rename(file.Path, destination); err != nil {
		return "", fmt.Errorf("storage: move %q into upload dir: %w", file.Name, err)
	}

	return persister.publicURL + "/" + file.Name, nil
}

// EnsureDirs creates the given directories if they do not exist yet.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: create directory %q: %w", dir, err)
		}
	}
	return nil
}
