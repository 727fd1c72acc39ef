// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/heroes/internal/platform/constants"
)

// ObjectStore is the subset of the S3 client used by [ObjectPersister].
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3-compatible client.
type S3Options struct {
	Region          string
	Endpoint        string // optional; set for R2, MinIO and other S3-compatible hosts
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client from static credentials.
//
// Without static credentials the default AWS provider chain is used.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
			options.UsePathStyle = true
		}
	}), nil
}

// ObjectPersister uploads staged files to a bucket.
type ObjectPersister struct {
	client    ObjectStore
	bucket    string
	publicURL string
	logger    *slog.Logger
}

// NewObjectPersister returns a persister uploading into bucket and building
// URLs from publicURL (custom domain or r2.dev / CDN origin).
func NewObjectPersister(client ObjectStore, bucket, publicURL string, logger *slog.Logger) *ObjectPersister {
	return &ObjectPersister{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Persist uploads the staged file under "heroes/<name>" and removes the staged copy.
//
// The staged copy is only removed after the upload succeeded.
func (persister *ObjectPersister) Persist(ctx context.Context, file StagedFile) (string, error) {
	body, err := os.Open(file.Path)
	if err != nil {
		return "", fmt.Errorf("storage: open staged file: %w", err)
	}

	key := constants.ObjectKeyPrefix + "/" + file.Name
	input := &s3.PutObjectInput{
		Bucket:        aws.String(persister.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(file.Size),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	_, err = persister.client.PutObject(ctx, input)
	_ = body.Close()
	if err != nil {
		return "", fmt.Errorf("storage: upload %q: %w", key, err)
	}

	if err := os.Remove(file.Path); err != nil {
		persister.logger.Warn("staged_file_cleanup_failed", slog.String("path", file.Path), slog.Any("error", err))
	}

	return persister.publicURL + "/" + key, nil
}
