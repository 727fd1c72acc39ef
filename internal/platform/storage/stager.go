// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/taibuivan/heroes/internal/platform/apperr"
	"github.com/taibuivan/heroes/pkg/slug"
	"github.com/taibuivan/heroes/pkg/uuid"
)

// Stager copies incoming multipart files into the staging directory.
type Stager struct {
	dir string
}

// NewStager returns a Stager writing into dir.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir}
}

// Stage writes every header into the staging directory, in order.
//
// On failure the files staged so far are removed again.
func (stager *Stager) Stage(headers []*multipart.FileHeader) ([]StagedFile, error) {
	staged := make([]StagedFile, 0, len(headers))
	for _, header := range headers {
		file, err := stager.stageOne(header)
		if err != nil {
			Discard(staged)
			return nil, apperr.StorageFailure(err)
		}
		staged = append(staged, file)
	}
	return staged, nil
}

func (stager *Stager) stageOne(header *multipart.FileHeader) (StagedFile, error) {
	source, err := header.Open()
	if err != nil {
		return StagedFile{}, fmt.Errorf("storage: open upload %q: %w", header.Filename, err)
	}
	defer source.Close()

	name := FileName(header.Filename)
	path := filepath.Join(stager.dir, name)

	destination, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return StagedFile{}, fmt.Errorf("storage: create staged file: %w", err)
	}

	size, err := io.Copy(destination, source)
	if closeErr := destination.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return StagedFile{}, fmt.Errorf("storage: write staged file: %w", err)
	}

	return StagedFile{
		Path:        path,
		Name:        name,
		ContentType: header.Header.Get("Content-Type"),
		Size:        size,
	}, nil
}

// FileName builds "<uuidv7>-<slug><ext>" from a client-supplied file name.
func FileName(original string) string {
	return uuid.New() + "-" + slug.FileName(original)
}

// Discard removes staged files that were not persisted.
//
// Files already moved away are skipped.
func Discard(files []StagedFile) {
	for _, file := range files {
		_ = os.Remove(file.Path)
	}
}
