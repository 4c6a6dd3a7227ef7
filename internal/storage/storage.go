// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded assets. Files live either on the local
// filesystem, served by the router under a URL prefix, or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"zamzam/internal/config"
)

// Backend stores and removes asset files. Save returns the URL recorded as
// the content's file_url; Delete takes that URL back and must succeed when
// the file is already gone.
type Backend interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// New builds the backend selected by cfg.Storage.Backend.
func New(cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendLocal, "":
		return NewLocal(cfg.Storage.UploadDir, cfg.Storage.URLPrefix)
	case config.BackendS3:
		c := cfg.S3
		client, err := NewS3(c.Endpoint, c.Region, c.AccessKey, c.SecretKey, c.Bucket, c.PublicURL)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("storage: s3 backend selected but endpoint or credentials are empty")
		}
		return client, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Storage.Backend)
	}
}
