package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studyabroad/cms-api/utils/optional"
)

// SlugRegex matches lowercase, hyphen-separated URL slugs
var SlugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// Enum is implemented by the closed enum types checked with the "enum" tag.
type Enum interface {
	IsValid() bool
}

// NewValidator creates a new validator instance.
// Field names in errors use the json tag, and the "enum" tag accepts any value
// whose IsValid method reports true.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.IsValid()
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return SlugRegex.MatchString(fl.Field().String())
	})

	return &Validator{
		validate: v,
	}
}

// RegisterOptional makes the given optional.Field / optional.Nullable
// instantiations validate as their wrapped value when present and be skipped
// by omitempty when absent or null.
func (v *Validator) RegisterOptional(types ...optional.Validatable) {
	values := make([]interface{}, len(types))
	for i, t := range types {
		values[i] = t
	}
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(optional.Validatable); ok {
			return o.ValidationValue()
		}
		return nil
	}, values...)
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fields
	}

	for _, e := range validationErrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", e.Field())
		case "email":
			fields[field] = "Invalid email format"
		case "slug":
			fields[field] = fmt.Sprintf("%s must be a lowercase, hyphen-separated slug", e.Field())
		case "enum", "oneof":
			fields[field] = fmt.Sprintf("%s has an unsupported value %v", e.Field(), e.Value())
		case "min":
			if e.Kind() == reflect.Slice {
				fields[field] = fmt.Sprintf("%s must contain at least %s item(s)", e.Field(), e.Param())
			} else {
				fields[field] = fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
			}
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
		case "gte":
			fields[field] = fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
		case "lte":
			fields[field] = fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", e.Field())
		}
	}

	return fields
}

// SanitizeString drops null bytes and trims surrounding whitespace
func SanitizeString(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
