// Package validation wraps go-playground/validator v10 with a shared
// instance and Arabic error messages. Field names in messages come from
// the struct's json tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Messages overrides the generic message for a failed rule. Keys are
// "<json field>.<tag>", e.g. "name.required".
type Messages map[string]string

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error is returned when a struct fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		// notblank rejects strings made only of whitespace.
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			if f.Kind() == reflect.Pointer {
				if f.IsNil() {
					return true
				}
				f = f.Elem()
			}
			if f.Kind() != reflect.String {
				return true
			}
			return strings.TrimSpace(f.String()) != ""
		})
	})
	return validate
}

// Struct validates s. The first failing rule's message is used as the
// error text; overrides replace the generic wording.
func Struct(s any, overrides Messages) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(verrs))}
	for i, fe := range verrs {
		msg, ok := overrides[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = translate(fe)
		}
		out.Fields[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param(), Message: msg}
	}
	return out
}

var messageTemplates = map[string]string{
	"required": "الحقل %s مطلوب",
	"notblank": "الحقل %s مطلوب",
	"url":      "الحقل %s يجب أن يكون رابطاً صالحاً",
	"uuid":     "الحقل %s يجب أن يكون معرفاً صالحاً",
}

var messageTemplatesWithParam = map[string]string{
	"max":   "الحقل %s يجب ألا يتجاوز %s",
	"min":   "الحقل %s يجب ألا يقل عن %s",
	"oneof": "الحقل %s يجب أن يكون أحد القيم: %s",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := messageTemplatesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("قيمة الحقل %s غير صالحة", fe.Field())
}
