package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/snackboard/internal/apperror"
)

// validate is shared by all handlers. A validator.Validate caches struct
// metadata, so one instance for the package is the intended usage.
var validate = validator.New()

// validateBody runs struct-tag validation on a decoded request body and
// converts failures into a 400-mapped domain error with a readable
// message, e.g. "username is required; password is required".
func validateBody(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return apperror.ValidationFailed(strings.ToLower(ve[0].Field()), strings.Join(msgs, "; "))
	}
	return err
}

// fieldError converts a single validation failure into a human-readable
// message keyed by the json-ish field name.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
