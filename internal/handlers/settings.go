// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"zamzam/internal/apperr"
	"zamzam/internal/settings"
)

const msgSettingNotFound = "الإعداد غير موجود"

// SettingsList returns every stored setting ordered by key.
func (a *API) SettingsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.settings.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"settings": items})
}

// SettingGet returns one setting by key.
func (a *API) SettingGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	s, err := a.settings.Get(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s == nil {
		writeError(w, r, apperr.NotFound(msgSettingNotFound))
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"setting": s})
}

// SettingSet creates or replaces a setting. The body is
// {"value": any, "description": string}; a missing value stores null.
func (a *API) SettingSet(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" || len(key) > maxNameLen {
		writeError(w, r, apperr.Validation("مفتاح الإعداد غير صالح"))
		return
	}

	fields := map[string]json.RawMessage{}
	if err := decodeBody(r, &fields, msgNoData); err != nil {
		writeError(w, r, err)
		return
	}
	if len(fields) == 0 {
		writeError(w, r, apperr.Validation(msgNoData))
		return
	}

	var value any
	if raw, ok := fields["value"]; ok {
		if err := json.Unmarshal(raw, &value); err != nil {
			writeError(w, r, apperr.Validation(msgInvalidJSON))
			return
		}
	}
	desc, err := optionalField[string](fields, "description")
	if err != nil {
		writeError(w, r, err)
		return
	}

	s, err := a.settings.Set(r.Context(), key, value, desc.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message": "تم حفظ الإعداد بنجاح",
		"setting": s,
	})
}

// SettingDelete removes a setting by key.
func (a *API) SettingDelete(w http.ResponseWriter, r *http.Request) {
	existed, err := a.settings.Delete(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !existed {
		writeError(w, r, apperr.NotFound(msgSettingNotFound))
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "تم حذف الإعداد بنجاح"})
}

// groupHandlers serves the read and write side of one settings group under
// a response key.
type groupHandlers struct {
	api     *API
	group   settings.Group
	key     string
	message string
}

func (g groupHandlers) get(w http.ResponseWriter, r *http.Request) {
	values, err := g.api.groups.Read(r.Context(), g.group)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{g.key: values})
}

func (g groupHandlers) update(w http.ResponseWriter, r *http.Request) {
	in := map[string]any{}
	if err := decodeBody(r, &in, msgNoData); err != nil {
		writeError(w, r, err)
		return
	}
	if len(in) == 0 {
		writeError(w, r, apperr.Validation(msgNoData))
		return
	}

	values, err := g.api.groups.Write(r.Context(), g.group, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message": g.message,
		g.key:     values,
	})
}

func (a *API) themeGroup() groupHandlers {
	return groupHandlers{api: a, group: settings.Theme, key: "theme", message: "تم تحديث إعدادات السمة بنجاح"}
}

func (a *API) socialGroup() groupHandlers {
	return groupHandlers{api: a, group: settings.Social, key: "social_media", message: "تم تحديث روابط التواصل الاجتماعي بنجاح"}
}

func (a *API) seoGroup() groupHandlers {
	return groupHandlers{api: a, group: settings.SEO, key: "seo", message: "تم تحديث إعدادات SEO بنجاح"}
}

// ThemeGet returns the theme settings.
func (a *API) ThemeGet(w http.ResponseWriter, r *http.Request) { a.themeGroup().get(w, r) }

// ThemeUpdate stores the theme fields present in the body.
func (a *API) ThemeUpdate(w http.ResponseWriter, r *http.Request) { a.themeGroup().update(w, r) }

// SocialMediaGet returns the social media links.
func (a *API) SocialMediaGet(w http.ResponseWriter, r *http.Request) { a.socialGroup().get(w, r) }

// SocialMediaUpdate stores links for known platforms; others are ignored.
func (a *API) SocialMediaUpdate(w http.ResponseWriter, r *http.Request) { a.socialGroup().update(w, r) }

// SEOGet returns the SEO settings.
func (a *API) SEOGet(w http.ResponseWriter, r *http.Request) { a.seoGroup().get(w, r) }

// SEOUpdate stores the SEO fields present in the body.
func (a *API) SEOUpdate(w http.ResponseWriter, r *http.Request) { a.seoGroup().update(w, r) }

// DeveloperModeGet reports the developer-mode flag.
func (a *API) DeveloperModeGet(w http.ResponseWriter, r *http.Request) {
	enabled, err := a.groups.DeveloperModeEnabled(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"developer_mode_enabled": enabled})
}

// DeveloperModeSet stores {"enabled": bool}. A missing flag disables it.
func (a *API) DeveloperModeSet(w http.ResponseWriter, r *http.Request) {
	// A missing body or a missing "enabled" turns the mode off.
	fields := map[string]json.RawMessage{}
	if err := decodeBody(r, &fields, ""); err != nil {
		writeError(w, r, err)
		return
	}
	flag, err := optionalField[bool](fields, "enabled")
	if err != nil {
		writeError(w, r, err)
		return
	}
	enabled := flag.Value != nil && *flag.Value

	if err := a.groups.SetDeveloperMode(r.Context(), enabled); err != nil {
		writeError(w, r, err)
		return
	}

	msg := "تم إلغاء وضع المطور"
	if enabled {
		msg = "تم تفعيل وضع المطور"
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message":                msg,
		"developer_mode_enabled": enabled,
	})
}
