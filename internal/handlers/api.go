// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the gallery JSON API.
// Handlers are grouped by resource (taxonomy, content, settings) and
// receive their dependencies through the API struct.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/middleware"
	"zamzam/internal/models"
	"zamzam/internal/settings"
	"zamzam/internal/storage"
	"zamzam/internal/store"
	"zamzam/internal/validation"
)

const (
	msgInternalError = "حدث خطأ داخلي في الخادم"
	msgNoData        = "لا توجد بيانات"
	msgNoUpdateData  = "لا توجد بيانات للتحديث"
	msgInvalidJSON   = "بيانات JSON غير صالحة"

	msgCategoryNotFound = "التصنيف غير موجود"
	msgTypeNotFound     = "النوع غير موجود"
	msgBrandNotFound    = "العلامة التجارية غير موجودة"
	msgContentNotFound  = "المحتوى غير موجود"
)

// fallbackUploader is recorded as uploaded_by when no administrator
// account exists.
const fallbackUploader = "admin"

// API groups all JSON API handlers and their dependencies.
type API struct {
	db         *sql.DB
	categories *store.CategoryStore
	types      *store.TypeStore
	brands     *store.BrandStore
	content    *store.ContentStore
	settings   *store.SettingStore
	users      *store.UserStore
	groups     *settings.Service
	storage    storage.Backend
	adminName  string
}

// New creates the API handler group. adminUsername names the seeded
// account used as the default uploader.
func New(db *sql.DB, backend storage.Backend, adminUsername string) *API {
	settingStore := store.NewSettingStore(db)
	return &API{
		db:         db,
		categories: store.NewCategoryStore(db),
		types:      store.NewTypeStore(db),
		brands:     store.NewBrandStore(db),
		content:    store.NewContentStore(db),
		settings:   settingStore,
		users:      store.NewUserStore(db),
		groups:     settings.New(settingStore),
		storage:    backend,
		adminName:  adminUsername,
	}
}

// defaultUploader returns the administrator's id, or a fixed name when
// the account is missing.
func (a *API) defaultUploader(ctx context.Context) string {
	if a.adminName == "" {
		return fallbackUploader
	}
	u, err := a.users.FindByUsername(ctx, a.adminName)
	if err != nil {
		slog.Warn("default uploader lookup failed", "error", err)
		return fallbackUploader
	}
	if u == nil {
		return fallbackUploader
	}
	return u.ID.String()
}

// writeJSON encodes body with the given status.
func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeOK writes a success envelope. body may be nil.
func writeOK(w http.ResponseWriter, status int, body map[string]any) {
	if body == nil {
		body = map[string]any{}
	}
	body["success"] = true
	writeJSON(w, status, body)
}

// writeFailure writes the failure envelope.
func writeFailure(w http.ResponseWriter, status int, kind apperr.Kind, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
		"kind":    string(kind),
	})
}

// writeError maps err to a status and kind. Errors that carry no kind are
// logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeFailure(w, http.StatusRequestEntityTooLarge, apperr.KindValidation, middleware.MsgBodyTooLarge)
		return
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		writeFailure(w, http.StatusBadRequest, apperr.KindValidation, verr.Error())
		return
	}

	var aerr *apperr.Error
	if errors.As(err, &aerr) {
		if aerr.Kind == apperr.KindStorageFailure {
			slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		}
		writeFailure(w, aerr.Status(), aerr.Kind, aerr.Message)
		return
	}

	slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	writeFailure(w, http.StatusInternalServerError, apperr.KindOf(err), msgInternalError)
}

// urlID parses the {id} route parameter. Ids are generated uuids, so a
// value that does not parse names no row and is reported as notFound.
func urlID(r *http.Request, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound(notFound)
	}
	return id, nil
}

// filterID parses an exact-match filter value. A value that does not parse
// cannot match a stored id, so it becomes uuid.Nil, which no row carries.
func filterID(raw string) *uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		id = uuid.Nil
	}
	return &id
}

// decodeBody decodes a JSON request body into dst. An empty body is a
// validation error carrying emptyMsg, or leaves dst untouched when emptyMsg
// is "".
func decodeBody(r *http.Request, dst any, emptyMsg string) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(buf.Bytes())) == 0 {
		if emptyMsg == "" {
			return nil
		}
		return apperr.Validation(emptyMsg)
	}
	if err := json.Unmarshal(buf.Bytes(), dst); err != nil {
		return apperr.Validation(msgInvalidJSON)
	}
	return nil
}

// decodeFields decodes a JSON object body keeping each value raw, so that
// an absent key can be told apart from an explicit null.
func decodeFields(r *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := decodeBody(r, &fields, msgNoUpdateData); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperr.Validation(msgNoUpdateData)
	}
	return fields, nil
}

// optionalField reads key from fields as a partial-update value.
func optionalField[T any](fields map[string]json.RawMessage, key string) (models.Optional[T], error) {
	raw, ok := fields[key]
	if !ok {
		return models.Optional[T]{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return models.Null[T](), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.Optional[T]{}, apperr.Validation(fmt.Sprintf("قيمة الحقل %s غير صالحة", key))
	}
	return models.Some(v), nil
}
