// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local writes assets into a directory on disk.
type Local struct {
	dir    string
	prefix string
}

// NewLocal creates the upload directory if needed. prefix is the URL path
// the directory is served under, e.g. "/uploads".
func NewLocal(dir, prefix string) (*Local, error) {
	if dir == "" {
		return nil, errors.New("storage: upload directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &Local{dir: dir, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

// Dir returns the directory files are written to.
func (l *Local) Dir() string { return l.dir }

// Prefix returns the URL path prefix files are served under.
func (l *Local) Prefix() string { return l.prefix }

// Save writes body to dir/name. An existing file is never overwritten.
func (l *Local) Save(_ context.Context, name, _ string, body io.Reader, _ int64) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("storage: invalid file name %q", name)
	}

	path := filepath.Join(l.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: close %s: %w", name, err)
	}
	return l.prefix + "/" + name, nil
}

// Delete removes the file behind fileURL. URLs outside the prefix and
// missing files are ignored.
func (l *Local) Delete(_ context.Context, fileURL string) error {
	name, ok := strings.CutPrefix(fileURL, l.prefix+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", name, err)
	}
	return nil
}
