package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"zamzam/internal/apperr"
	"zamzam/internal/models"
	"zamzam/internal/validation"
)

// Column limits shared by request validation.
const (
	maxNameLen  = 100
	maxURLLen   = 500
	maxTitleLen = 200
)

const (
	msgCategoryNameRequired = "اسم التصنيف مطلوب"
	msgTypeFieldsRequired   = "اسم النوع ومعرف التصنيف مطلوبان"
	msgBrandNameRequired    = "اسم العلامة التجارية مطلوب"
	msgTitleRequired        = "العنوان مطلوب"
)

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url" validate:"omitempty,max=500"`
}

var categoryMessages = validation.Messages{
	"name.required": msgCategoryNameRequired,
	"name.notblank": msgCategoryNameRequired,
}

type typeRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Description *string `json:"description"`
}

var typeMessages = validation.Messages{
	"name.required":        msgTypeFieldsRequired,
	"name.notblank":        msgTypeFieldsRequired,
	"category_id.required": msgTypeFieldsRequired,
}

type brandRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,max=500"`
	WebsiteURL  *string `json:"website_url" validate:"omitempty,max=500"`
	Description *string `json:"description"`
}

var brandMessages = validation.Messages{
	"name.required": msgBrandNameRequired,
	"name.notblank": msgBrandNameRequired,
}

// requiredName reads a name field that may be omitted from an update but
// can never be cleared.
func requiredName(fields map[string]json.RawMessage, key, msg string) (models.Optional[string], error) {
	o, err := optionalField[string](fields, key)
	if err != nil {
		return o, err
	}
	if !o.Set {
		return o, nil
	}
	if o.Value == nil || strings.TrimSpace(*o.Value) == "" {
		return o, apperr.Validation(msg)
	}
	return o, checkLen(key, *o.Value, maxNameLen)
}

// urlField reads an optional URL column.
func urlField(fields map[string]json.RawMessage, key string) (models.Optional[string], error) {
	o, err := optionalField[string](fields, key)
	if err != nil || o.Value == nil {
		return o, err
	}
	return o, checkLen(key, *o.Value, maxURLLen)
}

func checkLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return apperr.Validation("الحقل " + field + " طويل جداً")
	}
	return nil
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
