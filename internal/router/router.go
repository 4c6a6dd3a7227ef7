// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// gallery API. Resource routes live under /api; health, metrics and the
// local upload directory sit beside it.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zamzam/internal/handlers"
	"zamzam/internal/middleware"
)

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64

	// RateLimit requests per RateWindow per client IP on mutating routes.
	// Zero disables limiting. RateCounter shares counts between instances.
	RateLimit   int
	RateWindow  time.Duration
	RateCounter httprate.LimitCounter

	// UploadDir is served under UploadPrefix when set (local storage only).
	UploadDir    string
	UploadPrefix string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.Get("/health", api.Health)
	r.Handle("/metrics", promhttp.Handler())

	if opts.UploadDir != "" && opts.UploadPrefix != "" {
		prefix := opts.UploadPrefix
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(opts.UploadDir)))
		r.Get(prefix+"/*", files.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		if opts.MaxBodyBytes > 0 {
			r.Use(middleware.MaxBodySize(opts.MaxBodyBytes))
		}
		r.Use(mutatingOnly(middleware.RateLimit(opts.RateLimit, opts.RateWindow, opts.RateCounter)))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoriesList)
			r.Post("/", api.CategoryCreate)
			r.Get("/{id}", api.CategoryGet)
			r.Put("/{id}", api.CategoryUpdate)
			r.Delete("/{id}", api.CategoryDelete)
		})

		r.Route("/types", func(r chi.Router) {
			r.Get("/", api.TypesList)
			r.Post("/", api.TypeCreate)
			r.Get("/{id}", api.TypeGet)
			r.Put("/{id}", api.TypeUpdate)
			r.Delete("/{id}", api.TypeDelete)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", api.BrandsList)
			r.Post("/", api.BrandCreate)
			r.Get("/{id}", api.BrandGet)
			r.Put("/{id}", api.BrandUpdate)
			r.Delete("/{id}", api.BrandDelete)
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", api.ContentList)
			r.Post("/", api.ContentUpload)
			r.Get("/stats", api.ContentStats)
			r.Get("/{id}", api.ContentGet)
			r.Put("/{id}", api.ContentUpdate)
			r.Delete("/{id}", api.ContentDelete)
			r.Post("/{id}/like", api.ContentLike)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", api.SettingsList)

			// Grouped views, matched before the {key} catch-all.
			r.Get("/theme", api.ThemeGet)
			r.Post("/theme", api.ThemeUpdate)
			r.Get("/social-media", api.SocialMediaGet)
			r.Post("/social-media", api.SocialMediaUpdate)
			r.Get("/seo", api.SEOGet)
			r.Post("/seo", api.SEOUpdate)
			r.Get("/developer-mode", api.DeveloperModeGet)
			r.Post("/developer-mode", api.DeveloperModeSet)

			r.Get("/{key}", api.SettingGet)
			r.Post("/{key}", api.SettingSet)
			r.Put("/{key}", api.SettingSet)
			r.Delete("/{key}", api.SettingDelete)
		})
	})

	return r
}

// mutatingOnly applies mw to requests that change state. Reads bypass it.
func mutatingOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}
