package store

import (
	"context"
	"testing"
	"time"

	"zamzam/internal/models"
)

func TestSettingStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		value any
		kind  models.ValueKind
		raw   string
	}{
		{"scalar string", "dark", models.ValueScalar, "dark"},
		{"flag", true, models.ValueStructured, "true"},
		{"mapping", map[string]any{"facebook": "https://fb.com/x"}, models.ValueStructured, `{"facebook":"https://fb.com/x"}`},
		{"sequence", []any{"a", "b"}, models.ValueStructured, `["a","b"]`},
		{"null", nil, models.ValueNull, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "test_" + tt.name
			if _, err := s.Set(ctx, key, tt.value, nil); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get(ctx, key)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got == nil {
				t.Fatal("expected setting, got nil")
			}
			if got.Value.Kind() != tt.kind {
				t.Errorf("kind: got %v, want %v", got.Value.Kind(), tt.kind)
			}
			if got.Value.Raw() != tt.raw {
				t.Errorf("raw: got %q, want %q", got.Value.Raw(), tt.raw)
			}
		})
	}
}

func TestSettingStoreUpsertKeepsCreatedAt(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)
	ctx := context.Background()

	first, err := s.Set(ctx, "theme_mode", "light", ptr("وضع المظهر"))
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	second, err := s.Set(ctx, "theme_mode", "dark", nil)
	if err != nil {
		t.Fatalf("Set again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert replaced the row id")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at not refreshed: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
	if second.Value.String("") != "dark" {
		t.Errorf("value: got %q", second.Value.Raw())
	}
	if second.Description == nil || *second.Description != "وضع المظهر" {
		t.Errorf("description lost on upsert without one: %v", second.Description)
	}

	third, err := s.Set(ctx, "theme_mode", "dark", ptr("جديد"))
	if err != nil {
		t.Fatalf("Set with description: %v", err)
	}
	if third.Description == nil || *third.Description != "جديد" {
		t.Errorf("description: got %v", third.Description)
	}
}

func TestSettingStoreGetMissingAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)
	ctx := context.Background()

	got, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing key, got %+v", got)
	}

	if _, err := s.Set(ctx, "site_title", "زمزم", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	existed, err := s.Delete(ctx, "site_title")
	if err != nil || !existed {
		t.Errorf("Delete: got %v, %v; want true, nil", existed, err)
	}
	existed, err = s.Delete(ctx, "site_title")
	if err != nil || existed {
		t.Errorf("second Delete: got %v, %v; want false, nil", existed, err)
	}
}

func TestSettingStoreListOrdered(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)
	ctx := context.Background()

	for _, k := range []string{"b", "c", "a"} {
		if _, err := s.Set(ctx, k, k, nil); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Key != "a" || list[2].Key != "c" {
		t.Errorf("unexpected order: %+v", list)
	}
}
