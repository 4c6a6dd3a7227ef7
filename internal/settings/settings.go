// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package settings groups individual setting keys into the theme, social
// media, SEO and developer-mode views exposed by the API. Every key falls
// back to its own default, so one missing row never hides the rest of a
// group. Values are always read from the store; nothing is cached.
package settings

import (
	"context"
	"fmt"

	"zamzam/internal/models"
)

// Store is the key-value persistence the groups are built on. Get returns
// nil without error when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Set(ctx context.Context, key string, value any, description *string) (*models.Setting, error)
}

// Entry binds a stored key to its field name in a group and its default.
type Entry struct {
	Key         string
	Field       string
	Default     any
	Description string
}

// Group is a fixed, ordered set of entries.
type Group []Entry

var Theme = Group{
	{Key: "theme_mode", Field: "theme_mode", Default: "light", Description: "وضع السمة (فاتح/داكن)"},
	{Key: "primary_color", Field: "primary_color", Default: "#6366f1", Description: "اللون الأساسي للموقع"},
	{Key: "font_family", Field: "font_family", Default: "Cairo", Description: "خط الموقع"},
	{Key: "background_style", Field: "background_style", Default: "gradient", Description: "نمط الخلفية"},
}

var SEO = Group{
	{Key: "seo_site_title", Field: "site_title", Default: "معرض زمزم - Abdallah", Description: "عنوان الموقع"},
	{Key: "seo_site_description", Field: "site_description", Default: "منصة متطورة لعرض وإدارة الصور والفيديوهات مع إمكانيات رفع متقدمة من الهاتف", Description: "وصف الموقع"},
	{Key: "seo_site_keywords", Field: "site_keywords", Default: "معرض صور, فيديوهات, رفع ملفات, تصوير, Abdallah", Description: "كلمات مفتاحية للموقع"},
	{Key: "seo_site_author", Field: "site_author", Default: "Abdallah", Description: "مؤلف الموقع"},
	{Key: "seo_site_url", Field: "site_url", Default: "https://p9hwiqclzlpy.manus.space", Description: "رابط الموقع"},
}

// SocialPlatforms lists the platforms with a stored link. Writes for any
// other platform name are ignored.
var SocialPlatforms = []string{
	"facebook", "twitter", "instagram", "linkedin",
	"youtube", "github", "telegram", "whatsapp",
}

var Social = socialGroup()

func socialGroup() Group {
	g := make(Group, 0, len(SocialPlatforms))
	for _, p := range SocialPlatforms {
		g = append(g, Entry{
			Key:         "social_" + p,
			Field:       p,
			Default:     "",
			Description: "رابط حساب " + p,
		})
	}
	return g
}

// DeveloperMode is the feature flag toggled from the settings screen.
var DeveloperMode = Entry{
	Key:         "developer_mode_enabled",
	Field:       "developer_mode_enabled",
	Default:     false,
	Description: "تفعيل وضع المطور",
}

// Defaults returns the entries seeded into an empty database.
func Defaults() []Entry {
	out := make([]Entry, 0, len(Theme)+len(SEO)+1)
	out = append(out, Theme...)
	out = append(out, SEO...)
	out = append(out, DeveloperMode)
	return out
}

// Service reads and writes the grouped views.
type Service struct {
	store Store
}

// New returns a Service backed by store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Read returns every field of g, substituting defaults for absent keys.
func (s *Service) Read(ctx context.Context, g Group) (map[string]any, error) {
	out := make(map[string]any, len(g))
	for _, e := range g {
		v, err := s.value(ctx, e)
		if err != nil {
			return nil, err
		}
		out[e.Field] = v
	}
	return out, nil
}

// Write stores the fields of in that belong to g and returns the updated
// group. Unknown fields are ignored.
func (s *Service) Write(ctx context.Context, g Group, in map[string]any) (map[string]any, error) {
	for _, e := range g {
		v, ok := in[e.Field]
		if !ok {
			continue
		}
		desc := e.Description
		if _, err := s.store.Set(ctx, e.Key, v, &desc); err != nil {
			return nil, fmt.Errorf("write setting %s: %w", e.Key, err)
		}
	}
	return s.Read(ctx, g)
}

// DeveloperModeEnabled reports the developer-mode flag.
func (s *Service) DeveloperModeEnabled(ctx context.Context) (bool, error) {
	setting, err := s.store.Get(ctx, DeveloperMode.Key)
	if err != nil {
		return false, fmt.Errorf("read setting %s: %w", DeveloperMode.Key, err)
	}
	if setting == nil {
		return false, nil
	}
	return setting.Value.Bool(false), nil
}

// SetDeveloperMode stores the developer-mode flag.
func (s *Service) SetDeveloperMode(ctx context.Context, enabled bool) error {
	desc := DeveloperMode.Description
	if _, err := s.store.Set(ctx, DeveloperMode.Key, enabled, &desc); err != nil {
		return fmt.Errorf("write setting %s: %w", DeveloperMode.Key, err)
	}
	return nil
}

func (s *Service) value(ctx context.Context, e Entry) (any, error) {
	setting, err := s.store.Get(ctx, e.Key)
	if err != nil {
		return nil, fmt.Errorf("read setting %s: %w", e.Key, err)
	}
	if setting == nil || setting.Value.IsNull() {
		return e.Default, nil
	}
	return setting.Value.Value(), nil
}
