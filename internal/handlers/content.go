// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/media"
	"zamzam/internal/metrics"
	"zamzam/internal/models"
)

// ContentList returns one page of public content. Query parameters:
// category_id, type_id, brand_id, content_type, search, page, per_page.
func (a *API) ContentList(w http.ResponseWriter, r *http.Request) {
	f, err := parseContentFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := a.content.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"content":    page.Items,
		"pagination": page.Pagination,
	})
}

func parseContentFilter(q url.Values) (*models.ContentFilter, error) {
	f := &models.ContentFilter{Search: strings.TrimSpace(q.Get("search"))}

	var err error
	if f.Page, err = intParam(q, "page", 1); err != nil {
		return nil, err
	}
	if f.PerPage, err = intParam(q, "per_page", models.DefaultPerPage); err != nil {
		return nil, err
	}
	f.CategoryID = uuidParam(q, "category_id")
	f.TypeID = uuidParam(q, "type_id")
	f.BrandID = uuidParam(q, "brand_id")
	if raw := q.Get("content_type"); raw != "" {
		ct := models.ContentType(raw)
		if !ct.Valid() {
			return nil, apperr.Validation("نوع المحتوى غير صالح")
		}
		f.ContentType = &ct
	}

	f.Normalize()
	return f, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("قيمة المعامل " + key + " يجب أن تكون رقماً")
	}
	return n, nil
}

func uuidParam(q url.Values, key string) *uuid.UUID {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	return filterID(raw)
}

// ContentGet returns one content item and counts the view.
func (a *API) ContentGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgContentNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := a.content.View(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.ContentViews.Inc()
	writeOK(w, http.StatusOK, map[string]any{"content": c})
}

// ContentUpdate applies a partial JSON update. Counters, the asset URLs
// and unknown keys are ignored.
func (a *API) ContentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgContentNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	patch, err := contentPatch(fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := a.content.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message": "تم تحديث المحتوى بنجاح",
		"content": c,
	})
}

func contentPatch(fields map[string]json.RawMessage) (models.ContentPatch, error) {
	var (
		p   models.ContentPatch
		err error
	)
	if p.Title, err = optionalField[string](fields, "title"); err != nil {
		return p, err
	}
	if p.Title.Set {
		if p.Title.Value == nil || strings.TrimSpace(*p.Title.Value) == "" {
			return p, apperr.Validation(msgTitleRequired)
		}
		if err := checkLen("title", *p.Title.Value, maxTitleLen); err != nil {
			return p, err
		}
	}
	if p.Description, err = optionalField[string](fields, "description"); err != nil {
		return p, err
	}
	if p.CategoryID, err = optionalField[uuid.UUID](fields, "category_id"); err != nil {
		return p, err
	}
	if p.TypeID, err = optionalField[uuid.UUID](fields, "type_id"); err != nil {
		return p, err
	}
	if p.BrandID, err = optionalField[uuid.UUID](fields, "brand_id"); err != nil {
		return p, err
	}
	if p.Tags, err = tagsField(fields, "tags"); err != nil {
		return p, err
	}
	if p.IsPublic, err = optionalField[bool](fields, "is_public"); err != nil {
		return p, err
	}
	return p, nil
}

// tagsField accepts either a JSON array of strings or one comma-separated
// string, the form used by uploads.
func tagsField(fields map[string]json.RawMessage, key string) (models.Optional[[]string], error) {
	raw, ok := fields[key]
	if ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return models.Optional[[]string]{}, apperr.Validation("قيمة الحقل " + key + " غير صالحة")
		}
		return models.Some(media.ParseTags(s)), nil
	}
	o, err := optionalField[[]string](fields, key)
	if err != nil || o.Value == nil {
		return o, err
	}
	cleaned := make([]string, 0, len(*o.Value))
	for _, t := range *o.Value {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return models.Some(cleaned), nil
}

// ContentDelete removes the asset, then the row. A storage failure other
// than a missing file keeps the row.
func (a *API) ContentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgContentNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx := r.Context()

	c, err := a.content.FindByID(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.storage.Delete(ctx, c.FileURL); err != nil {
		metrics.StorageErrors.WithLabelValues("delete").Inc()
		writeError(w, r, apperr.StorageFailure("فشل حذف الملف", err))
		return
	}
	if _, err := a.content.Delete(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("content deleted", "id", id, "file_url", c.FileURL)
	writeOK(w, http.StatusOK, map[string]any{"message": "تم حذف المحتوى بنجاح"})
}

// ContentLike increments the like counter.
func (a *API) ContentLike(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgContentNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := a.content.IncrementLikes(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.ContentLikes.Inc()
	writeOK(w, http.StatusOK, map[string]any{
		"message":     "تم الإعجاب بالمحتوى",
		"likes_count": n,
	})
}

// ContentStats returns aggregate counters over all content.
func (a *API) ContentStats(w http.ResponseWriter, r *http.Request) {
	st, err := a.content.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"stats": st})
}
