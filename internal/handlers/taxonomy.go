// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/models"
	"zamzam/internal/validation"
)

// --- Categories ---

// CategoriesList returns every category with its content count.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"categories": items})
}

// CategoryGet returns one category.
func (a *API) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgCategoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := a.categories.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"category": c})
}

// CategoryCreate creates a category from a JSON body.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req, msgCategoryNameRequired); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.Struct(&req, categoryMessages); err != nil {
		writeError(w, r, err)
		return
	}

	c := &models.Category{Name: req.Name, Description: req.Description, IconURL: req.IconURL}
	if err := a.categories.Create(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{
		"message":  "تم إنشاء التصنيف بنجاح",
		"category": c,
	})
}

// CategoryUpdate applies a partial update.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgCategoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.CategoryPatch
	if patch.Name, err = requiredName(fields, "name", msgCategoryNameRequired); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.Description, err = optionalField[string](fields, "description"); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.IconURL, err = urlField(fields, "icon_url"); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := a.categories.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message":  "تم تحديث التصنيف بنجاح",
		"category": c,
	})
}

// CategoryDelete removes a category nothing references.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgCategoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.categories.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "تم حذف التصنيف بنجاح"})
}

// --- Types ---

// TypesList returns types, optionally filtered by ?category_id=.
func (a *API) TypesList(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID = filterID(raw)
	}

	items, err := a.types.List(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"types": items})
}

// TypeGet returns one type.
func (a *API) TypeGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgTypeNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := a.types.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"type": t})
}

// TypeCreate creates a type under an existing category.
func (a *API) TypeCreate(w http.ResponseWriter, r *http.Request) {
	var req typeRequest
	if err := decodeBody(r, &req, msgTypeFieldsRequired); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.Struct(&req, typeMessages); err != nil {
		writeError(w, r, err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeError(w, r, apperr.Validation(msgCategoryMissing))
		return
	}

	t := &models.Type{
		Name:        req.Name,
		CategoryID:  categoryID,
		Description: req.Description,
	}
	if err := a.types.Create(r.Context(), t); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{
		"message": "تم إنشاء النوع بنجاح",
		"type":    t,
	})
}

// TypeUpdate applies a partial update; category_id moves the type.
func (a *API) TypeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgTypeNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.TypePatch
	if patch.Name, err = requiredName(fields, "name", "اسم النوع مطلوب"); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.CategoryID, err = optionalField[uuid.UUID](fields, "category_id"); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.CategoryID.Set && patch.CategoryID.Value == nil {
		writeError(w, r, apperr.Validation("معرف التصنيف مطلوب"))
		return
	}
	if patch.Description, err = optionalField[string](fields, "description"); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := a.types.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message": "تم تحديث النوع بنجاح",
		"type":    t,
	})
}

// TypeDelete removes a type nothing references.
func (a *API) TypeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgTypeNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.types.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "تم حذف النوع بنجاح"})
}

// --- Brands ---

// BrandsList returns every brand.
func (a *API) BrandsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.brands.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"brands": items})
}

// BrandGet returns one brand.
func (a *API) BrandGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgBrandNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := a.brands.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"brand": b})
}

// BrandCreate creates a brand.
func (a *API) BrandCreate(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decodeBody(r, &req, msgBrandNameRequired); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.Struct(&req, brandMessages); err != nil {
		writeError(w, r, err)
		return
	}

	b := &models.Brand{
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		Description: req.Description,
	}
	if err := a.brands.Create(r.Context(), b); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{
		"message": "تم إنشاء العلامة التجارية بنجاح",
		"brand":   b,
	})
}

// BrandUpdate applies a partial update.
func (a *API) BrandUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgBrandNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.BrandPatch
	if patch.Name, err = requiredName(fields, "name", msgBrandNameRequired); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.LogoURL, err = urlField(fields, "logo_url"); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.WebsiteURL, err = urlField(fields, "website_url"); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.Description, err = optionalField[string](fields, "description"); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := a.brands.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{
		"message": "تم تحديث العلامة التجارية بنجاح",
		"brand":   b,
	})
}

// BrandDelete removes a brand nothing references.
func (a *API) BrandDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, msgBrandNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.brands.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "تم حذف العلامة التجارية بنجاح"})
}
