package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"energy-marketplace/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var objectIDRe = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("object_id", validateObjectID)
		_ = v.RegisterValidation("energy_type", validateEnergyType)
	}
}

// IsObjectID reports whether s is a 0x-prefixed hex ledger id.
func IsObjectID(s string) bool {
	return objectIDRe.MatchString(s)
}

func validateObjectID(fl validator.FieldLevel) bool {
	return IsObjectID(fl.Field().String())
}

// validateEnergyType accepts a category name or its numeric code.
func validateEnergyType(fl validator.FieldLevel) bool {
	_, ok := domain.ParseEnergyType(fl.Field().String())
	return ok
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				s := sanitize(elem.String())
				elem.SetString(s)
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
