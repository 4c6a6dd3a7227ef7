package settings

import (
	"context"
	"errors"
	"testing"

	"zamzam/internal/models"
)

// memStore is an in-memory Store used to exercise the grouping logic.
type memStore struct {
	rows   map[string]*models.Setting
	getErr error
	writes []string
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]*models.Setting{}}
}

func (m *memStore) Get(_ context.Context, key string) (*models.Setting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.rows[key], nil
}

func (m *memStore) Set(_ context.Context, key string, value any, description *string) (*models.Setting, error) {
	stored, err := models.EncodeSettingValue(value)
	if err != nil {
		return nil, err
	}
	s := &models.Setting{Key: key, Value: models.DecodeSettingValue(stored), Description: description}
	m.rows[key] = s
	m.writes = append(m.writes, key)
	return s, nil
}

func (m *memStore) put(key, raw string) {
	m.rows[key] = &models.Setting{Key: key, Value: models.DecodeSettingValue(&raw)}
}

func TestRead_DefaultsPerKey(t *testing.T) {
	store := newMemStore()
	store.put("primary_color", "#ff0000")
	svc := New(store)

	theme, err := svc.Read(context.Background(), Theme)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := map[string]any{
		"theme_mode":       "light",
		"primary_color":    "#ff0000",
		"font_family":      "Cairo",
		"background_style": "gradient",
	}
	for k, v := range want {
		if theme[k] != v {
			t.Errorf("theme[%q] = %v, want %v", k, theme[k], v)
		}
	}
}

func TestRead_CorruptValueDegradesToString(t *testing.T) {
	store := newMemStore()
	store.put("seo_site_title", `{"broken":`)
	svc := New(store)

	seo, err := svc.Read(context.Background(), SEO)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if seo["site_title"] != `{"broken":` {
		t.Errorf("site_title = %#v, want raw stored text", seo["site_title"])
	}
	if seo["site_author"] != "Abdallah" {
		t.Errorf("site_author = %#v, want default", seo["site_author"])
	}
}

func TestWrite_OnlyKnownFields(t *testing.T) {
	store := newMemStore()
	svc := New(store)

	got, err := svc.Write(context.Background(), Social, map[string]any{
		"github":  "https://github.com/zamzam",
		"myspace": "https://myspace.example/zamzam",
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(store.writes) != 1 || store.writes[0] != "social_github" {
		t.Errorf("writes = %v, want only social_github", store.writes)
	}
	if got["github"] != "https://github.com/zamzam" {
		t.Errorf("github = %v", got["github"])
	}
	if got["facebook"] != "" {
		t.Errorf("facebook = %v, want empty default", got["facebook"])
	}
	if _, ok := got["myspace"]; ok {
		t.Error("unknown platform leaked into the group")
	}
	if d := store.rows["social_github"].Description; d == nil || *d != "رابط حساب github" {
		t.Errorf("description = %v", d)
	}
}

func TestDeveloperMode(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	ctx := context.Background()

	enabled, err := svc.DeveloperModeEnabled(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("developer mode should default to false")
	}

	if err := svc.SetDeveloperMode(ctx, true); err != nil {
		t.Fatal(err)
	}
	if raw := store.rows[DeveloperMode.Key].Value.Raw(); raw != "true" {
		t.Errorf("stored flag = %q, want \"true\"", raw)
	}
	enabled, _ = svc.DeveloperModeEnabled(ctx)
	if !enabled {
		t.Error("developer mode should be enabled after SetDeveloperMode(true)")
	}

	// Legacy rows written as "True" still read as enabled.
	store.put(DeveloperMode.Key, "True")
	enabled, _ = svc.DeveloperModeEnabled(ctx)
	if !enabled {
		t.Error(`"True" should read as enabled`)
	}
}

func TestRead_StoreErrorPropagates(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection reset")
	svc := New(store)

	if _, err := svc.Read(context.Background(), Theme); err == nil {
		t.Fatal("expected storage error to surface")
	}
}

func TestDefaults(t *testing.T) {
	defs := Defaults()
	if len(defs) != len(Theme)+len(SEO)+1 {
		t.Fatalf("len(Defaults()) = %d", len(defs))
	}
	seen := map[string]bool{}
	for _, d := range defs {
		if seen[d.Key] {
			t.Errorf("duplicate default key %q", d.Key)
		}
		seen[d.Key] = true
	}
	if !seen["developer_mode_enabled"] {
		t.Error("developer mode flag missing from defaults")
	}
}
