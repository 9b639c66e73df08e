// Package validator runs go-playground/validator tags on request DTOs and turns
// failures into shared validation errors.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"tgorders/domain/shared"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks s and returns a shared.ErrInvalidInput error naming the first
// failing field.
func Validate(entity string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return shared.NewValidationError(entity, "", err.Error())
	}

	fields := FormatValidationErrors(ve)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	first := names[0]
	return shared.NewValidationError(entity, first, first+": "+fields[first])
}

// FormatValidationErrors maps field name to a readable message.
func FormatValidationErrors(ve validator.ValidationErrors) map[string]string {
	errs := make(map[string]string, len(ve))
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "uuid", "uuid4", "uuid7":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("minimum is %s", e.Param())
	case "max":
		return fmt.Sprintf("maximum is %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("validation failed on '%s'", e.Tag())
	}
}
