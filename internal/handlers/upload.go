// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/media"
	"zamzam/internal/metrics"
	"zamzam/internal/models"
)

// maxMemory is the part of a multipart body kept in memory; larger files
// spill to temporary files.
const maxMemory = 32 << 20

const (
	msgNoFiles          = "لا توجد ملفات للرفع"
	msgNoFilesSelected  = "لم يتم اختيار أي ملفات"
	msgCategoryRequired = "يجب اختيار تصنيف"
	msgCategoryMissing  = "التصنيف غير موجود"
)

// ContentUpload accepts one or more files under the "files" field. Files
// with a disallowed extension are skipped; the rest are stored and
// inserted in one transaction. If the insert fails the stored files are
// removed again.
func (a *API) ContentUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, err)
			return
		}
		writeError(w, r, apperr.Validation(msgNoFiles))
		return
	}
	defer r.MultipartForm.RemoveAll()

	// A file input submitted with nothing selected arrives as a plain value
	// with an empty file name.
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		msg := msgNoFiles
		if _, ok := r.MultipartForm.Value["files"]; ok {
			msg = msgNoFilesSelected
		}
		writeError(w, r, apperr.Validation(msg))
		return
	}
	if !anyFileSelected(headers) {
		writeError(w, r, apperr.Validation(msgNoFilesSelected))
		return
	}

	ctx := r.Context()
	form, err := a.parseUploadForm(ctx, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var (
		items []*models.Content
		saved []string
	)
	for _, fh := range headers {
		c, err := a.storeFile(ctx, fh, form)
		if err != nil {
			a.removeFiles(saved)
			writeError(w, r, err)
			return
		}
		if c == nil {
			continue
		}
		saved = append(saved, c.FileURL)
		items = append(items, c)
	}

	created := []models.Content{}
	if len(items) > 0 {
		created, err = a.content.Create(ctx, items)
		if err != nil {
			a.removeFiles(saved)
			writeError(w, r, err)
			return
		}
	}

	for _, c := range created {
		metrics.UploadedFiles.WithLabelValues(string(c.ContentType)).Inc()
	}
	slog.Info("content uploaded", "accepted", len(created), "received", len(headers))
	writeOK(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("تم رفع %d ملف بنجاح", len(created)),
		"content": created,
	})
}

func anyFileSelected(headers []*multipart.FileHeader) bool {
	for _, fh := range headers {
		if fh.Filename != "" {
			return true
		}
	}
	return false
}

// uploadForm holds the form fields shared by every file of one upload.
type uploadForm struct {
	title       string
	description *string
	categoryID  uuid.UUID
	typeID      *uuid.UUID
	brandID     *uuid.UUID
	tags        []string
	uploadedBy  string
	isPublic    bool
}

// parseUploadForm reads the shared fields. The category must exist before
// any file is written.
func (a *API) parseUploadForm(ctx context.Context, r *http.Request) (*uploadForm, error) {
	form := &uploadForm{
		title:    strings.TrimSpace(r.FormValue("title")),
		tags:     media.ParseTags(r.FormValue("tags")),
		isPublic: true,
	}
	if d := r.FormValue("description"); d != "" {
		form.description = &d
	}

	rawCategory := strings.TrimSpace(r.FormValue("category_id"))
	if rawCategory == "" {
		return nil, apperr.Validation(msgCategoryRequired)
	}
	categoryID, err := uuid.Parse(rawCategory)
	if err != nil {
		return nil, apperr.Validation(msgCategoryMissing)
	}
	exists, err := a.categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Validation(msgCategoryMissing)
	}
	form.categoryID = categoryID

	if form.typeID, err = formUUID(r, "type_id"); err != nil {
		return nil, err
	}
	if form.brandID, err = formUUID(r, "brand_id"); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(r.FormValue("is_public")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperr.Validation("قيمة الحقل is_public غير صالحة")
		}
		form.isPublic = v
	}

	form.uploadedBy = strings.TrimSpace(r.FormValue("uploaded_by"))
	if form.uploadedBy == "" {
		form.uploadedBy = a.defaultUploader(ctx)
	}
	return form, nil
}

func formUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Validation("قيمة الحقل " + key + " غير صالحة")
	}
	return &id, nil
}

// storeFile writes one part to the storage backend and returns the row to
// insert, or nil when the file is skipped.
func (a *API) storeFile(ctx context.Context, fh *multipart.FileHeader, form *uploadForm) (*models.Content, error) {
	if fh.Filename == "" {
		return nil, nil
	}
	contentType, ext, ok := media.Classify(fh.Filename)
	if !ok {
		metrics.SkippedFiles.Inc()
		slog.Debug("upload skipped", "filename", fh.Filename)
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	mimeType := media.DetectMIME(f)
	fileURL, err := a.storage.Save(ctx, media.StorageName(ext), mimeType, f, fh.Size)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("save").Inc()
		return nil, apperr.StorageFailure("فشل حفظ الملف", err)
	}
	metrics.UploadedBytes.Add(float64(fh.Size))

	original := media.BaseName(fh.Filename)
	title := form.title
	if title == "" {
		title = original
	}

	c := &models.Content{
		Title:       truncate(title, maxTitleLen),
		Description: form.description,
		FileURL:     fileURL,
		ContentType: contentType,
		CategoryID:  form.categoryID,
		TypeID:      form.typeID,
		BrandID:     form.brandID,
		UploadedBy:  form.uploadedBy,
		Tags:        form.tags,
		IsPublic:    form.isPublic,
		Metadata: map[string]any{
			"original_name": original,
			"size":          fh.Size,
			"mime_type":     mimeType,
		},
	}
	if c.IsImage() {
		thumb := fileURL
		c.ThumbnailURL = &thumb
	}
	return c, nil
}

// removeFiles deletes stored files after a failed upload. Errors are
// logged only.
func (a *API) removeFiles(urls []string) {
	ctx := context.Background()
	for _, u := range urls {
		if err := a.storage.Delete(ctx, u); err != nil {
			slog.Warn("upload cleanup failed", "error", err, "file_url", u)
		}
	}
}
