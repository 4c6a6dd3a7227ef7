// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Every test runs against its own migrated and seeded
// SQLite database and a local upload directory.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"zamzam/internal/config"
	"zamzam/internal/database"
	"zamzam/internal/models"
	"zamzam/internal/storage"
	"zamzam/internal/store"
)

const testAdmin = "admin"

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	UploadDir string
	API       *API
	Handler   http.Handler
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Connect(database.SQLite, config.SQLiteDSN(filepath.Join(dir, "handlers.db")))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, database.SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	admin := database.Admin{Username: testAdmin, Email: "admin@example.com", Password: "secret123"}
	if err := database.Seed(context.Background(), db, admin); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uploadDir := filepath.Join(dir, "uploads")
	backend, err := storage.NewLocal(uploadDir, "/uploads")
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	api := New(db, backend, testAdmin)
	return &testEnv{DB: db, UploadDir: uploadDir, API: api, Handler: testRoutes(api)}
}

// testRoutes mounts the handlers the way the router does, without the
// global middleware.
func testRoutes(api *API) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", api.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", api.CategoriesList)
		r.Post("/categories", api.CategoryCreate)
		r.Get("/categories/{id}", api.CategoryGet)
		r.Put("/categories/{id}", api.CategoryUpdate)
		r.Delete("/categories/{id}", api.CategoryDelete)

		r.Get("/types", api.TypesList)
		r.Post("/types", api.TypeCreate)
		r.Get("/types/{id}", api.TypeGet)
		r.Put("/types/{id}", api.TypeUpdate)
		r.Delete("/types/{id}", api.TypeDelete)

		r.Get("/brands", api.BrandsList)
		r.Post("/brands", api.BrandCreate)
		r.Get("/brands/{id}", api.BrandGet)
		r.Put("/brands/{id}", api.BrandUpdate)
		r.Delete("/brands/{id}", api.BrandDelete)

		r.Get("/content", api.ContentList)
		r.Post("/content", api.ContentUpload)
		r.Get("/content/stats", api.ContentStats)
		r.Get("/content/{id}", api.ContentGet)
		r.Put("/content/{id}", api.ContentUpdate)
		r.Delete("/content/{id}", api.ContentDelete)
		r.Post("/content/{id}/like", api.ContentLike)

		r.Get("/settings", api.SettingsList)
		r.Get("/settings/theme", api.ThemeGet)
		r.Post("/settings/theme", api.ThemeUpdate)
		r.Get("/settings/social-media", api.SocialMediaGet)
		r.Post("/settings/social-media", api.SocialMediaUpdate)
		r.Get("/settings/seo", api.SEOGet)
		r.Post("/settings/seo", api.SEOUpdate)
		r.Get("/settings/developer-mode", api.DeveloperModeGet)
		r.Post("/settings/developer-mode", api.DeveloperModeSet)
		r.Get("/settings/{key}", api.SettingGet)
		r.Post("/settings/{key}", api.SettingSet)
		r.Put("/settings/{key}", api.SettingSet)
		r.Delete("/settings/{key}", api.SettingDelete)
	})
	return r
}

// do sends a request with an optional JSON body and decodes the response.
func (e *testEnv) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(t, req)
}

func (e *testEnv) serve(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	e.Handler.ServeHTTP(rr, req)

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", req.Method, req.URL.Path, rr.Body.String(), err)
	}
	return rr.Code, out
}

// upload sends a multipart upload with the given form fields and files
// (name -> content).
func (e *testEnv) upload(t *testing.T, fields map[string]string, files map[string][]byte) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	mw := newMultipart(t, &buf, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/content", &buf)
	req.Header.Set("Content-Type", mw)
	return e.serve(t, req)
}

// categoryID returns the id of a seeded category.
func (e *testEnv) categoryID(t *testing.T) string {
	t.Helper()
	items, err := store.NewCategoryStore(e.DB).List(context.Background())
	if err != nil || len(items) == 0 {
		t.Fatalf("no seeded categories: %v", err)
	}
	return items[0].ID.String()
}

// mustContent inserts a content row directly through the store.
func (e *testEnv) mustContent(t *testing.T, c models.Content) models.Content {
	t.Helper()
	if c.ContentType == "" {
		c.ContentType = models.ContentTypeImage
	}
	if c.FileURL == "" {
		c.FileURL = "/uploads/missing.png"
	}
	if c.UploadedBy == "" {
		c.UploadedBy = testAdmin
	}
	out, err := store.NewContentStore(e.DB).Create(context.Background(), []*models.Content{&c})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	return out[0]
}

func wantStatus(t *testing.T, got, want int, body map[string]any) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d (body %v)", got, want, body)
	}
}

func wantFailure(t *testing.T, body map[string]any, kind, msg string) {
	t.Helper()
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["kind"] != kind {
		t.Errorf("kind = %v, want %q", body["kind"], kind)
	}
	if msg != "" && body["error"] != msg {
		t.Errorf("error = %v, want %q", body["error"], msg)
	}
}
