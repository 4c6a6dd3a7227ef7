// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups content at the top level of the gallery taxonomy.
// Names are unique across all categories.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IconURL     *string   `json:"icon_url"`
	CreatedAt   time.Time `json:"created_at"`

	// Virtual fields populated by store methods.
	ContentCount int `json:"content_count"`
}

// CategoryPatch carries the fields of a partial category update.
type CategoryPatch struct {
	Name        Optional[string]
	Description Optional[string]
	IconURL     Optional[string]
}

// Type is a sub-classification that lives under exactly one category. The
// same name may be reused under different categories.
type Type struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"category_id"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	CategoryName *string `json:"category_name"`
	ContentCount int     `json:"content_count"`
}

// TypePatch carries the fields of a partial type update.
type TypePatch struct {
	Name        Optional[string]
	CategoryID  Optional[uuid.UUID]
	Description Optional[string]
}

// Brand identifies the device or maker associated with a piece of content.
type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LogoURL     *string   `json:"logo_url"`
	WebsiteURL  *string   `json:"website_url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	ContentCount int `json:"content_count"`
}

// BrandPatch carries the fields of a partial brand update.
type BrandPatch struct {
	Name        Optional[string]
	LogoURL     Optional[string]
	WebsiteURL  Optional[string]
	Description Optional[string]
}
