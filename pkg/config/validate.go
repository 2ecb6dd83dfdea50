package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// formatValidationError turns the first field error into a readable
// message naming the field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, e.Param(), e.Value())
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "lte":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "hostname_port":
			return fmt.Errorf("%s: must be host:port, got %q", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
