// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage turns uploaded image files into durable public URLs.

# Pipeline

 1. [Stager] copies each multipart file into the staging directory.
 2. A [Persister] moves the staged file to its permanent home and returns the URL.

Two persisters exist, one per [Variant]. The variant is resolved exactly once
at startup by [VariantFor] and [New]; request handlers only ever see the
[Persister] interface.

Failures are returned as [apperr.StorageFailure] and are never retried.
*/
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/heroes/internal/platform/apperr"
	"github.com/taibuivan/heroes/internal/platform/config"
)

// Variant names a concrete storage strategy.
type Variant string

const (
	// VariantLocal renames staged files into the served upload directory.
	VariantLocal Variant = "local"
	// VariantObjectStorage uploads staged files to an S3-compatible bucket.
	VariantObjectStorage Variant = "object_storage"
)

// variantByFlag is the single mapping from the ENABLE_OBJECT_STORAGE flag to a variant.
var variantByFlag = map[bool]Variant{
	false: VariantLocal,
	true:  VariantObjectStorage,
}

// VariantFor resolves the configuration flag into a [Variant].
func VariantFor(objectStorageEnabled bool) Variant {
	return variantByFlag[objectStorageEnabled]
}

// StagedFile is an uploaded file sitting in the staging directory.
type StagedFile struct {
	// Path is the absolute or working-directory-relative path of the staged copy.
	Path string
	// Name is the generated, URL-safe file name (also the final object name).
	Name string
	// ContentType is the client-declared MIME type.
	ContentType string
	// Size is the number of bytes staged.
	Size int64
}

// Persister is the capability every storage variant implements.
//
// Persist must either fully succeed (the file is reachable at the returned
// URL) or leave the staged source untouched.
type Persister interface {
	Persist(ctx context.Context, file StagedFile) (string, error)
}

// New builds the persister for the configured variant.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Persister, error) {
	variant := VariantFor(cfg.ObjectStorageEnabled)

	switch variant {
	case VariantLocal:
		return NewLocalPersister(cfg.UploadDir, cfg.AppDomain), nil
	case VariantObjectStorage:
		client, err := NewS3Client(ctx, S3Options{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return NewObjectPersister(client, cfg.S3Bucket, cfg.S3PublicURL, logger), nil
	default:
		return nil, fmt.Errorf("storage: unknown variant %q", variant)
	}
}

// PersistAll persists files in order and returns their URLs in the same order.
//
// It stops at the first failure. Files already persisted stay where they are.
func PersistAll(ctx context.Context, persister Persister, files []StagedFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := persister.Persist(ctx, file)
		if err != nil {
			if apperr.IsAppError(err) {
				return nil, err
			}
			return nil, apperr.StorageFailure(err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
