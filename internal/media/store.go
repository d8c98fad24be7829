// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media stores uploaded images in an S3-compatible object store
// and produces resized variants for the site frontend.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrUnavailable is returned when no object store is configured.
var ErrUnavailable = errors.New("media store not configured")

// ErrObjectNotFound is returned when the requested object does not exist.
var ErrObjectNotFound = errors.New("media object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// ObjectStore is the storage backend for uploaded media.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Remove(ctx context.Context, key string) error
}

// StoreConfig holds connection settings for the S3-compatible backend.
type StoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// minioStore implements ObjectStore on a MinIO/S3 bucket.
type minioStore struct {
	client *minio.Client
	bucket string
}

// NewStore connects to the object store and ensures the bucket exists.
func NewStore(ctx context.Context, cfg StoreConfig) (ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &minioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storing object %q: %w", key, err)
	}
	return nil
}

func (s *minioStore) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("fetching object %q: %w", key, err)
	}

	// GetObject is lazy; Stat forces the first request so missing keys
	// surface here rather than on first read.
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, err)
	}

	return obj, ObjectInfo{
		Key:         key,
		Size:        stat.Size,
		ContentType: stat.ContentType,
	}, nil
}

func (s *minioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object %q: %w", key, err)
	}
	return nil
}
