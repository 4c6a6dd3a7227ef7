// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media classifies uploaded files and derives the names they are
// stored under.
package media

import (
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"zamzam/internal/models"
)

// allowedExtensions maps lowercase extensions to the content type they
// upload as. Classification looks at the extension only.
var allowedExtensions = map[string]models.ContentType{
	"png":  models.ContentTypeImage,
	"jpg":  models.ContentTypeImage,
	"jpeg": models.ContentTypeImage,
	"gif":  models.ContentTypeImage,
	"mp4":  models.ContentTypeVideo,
	"mov":  models.ContentTypeVideo,
	"avi":  models.ContentTypeVideo,
	"webm": models.ContentTypeVideo,
}

// Classify returns the content type and lowercase extension of filename,
// or ok=false when the extension is not allowed.
func Classify(filename string) (ct models.ContentType, ext string, ok bool) {
	ext = Extension(filename)
	ct, ok = allowedExtensions[ext]
	return ct, ext, ok
}

// Extension returns the lowercase extension of filename without the dot.
func Extension(filename string) string {
	base := BaseName(filename)
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// BaseName strips any directory part a client sent with the file name,
// using either slash style.
func BaseName(filename string) string {
	filename = strings.ReplaceAll(filename, `\`, "/")
	base := path.Base(filename)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// StorageName returns a fresh collision-resistant name for a file with
// extension ext. The client's file name is never reused.
func StorageName(ext string) string {
	return uuid.NewString() + "." + ext
}

// ParseTags splits a comma-separated list, trimming entries and dropping
// empty ones. Order is kept.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// DetectMIME sniffs the MIME type from the start of r and rewinds it.
func DetectMIME(r io.ReadSeeker) string {
	m, err := mimetype.DetectReader(r)
	if _, serr := r.Seek(0, io.SeekStart); serr != nil || err != nil {
		return "application/octet-stream"
	}
	return m.String()
}
