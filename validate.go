package reshadx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/reshadx/reshadx-go/internal/apierrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name so Error.Field matches what the API
	// would have returned.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "koanf"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validateParams checks params against its validate tags and returns the first
// failure as a VALIDATION_ERROR.
func validateParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		apiErr := apierrors.NewValidationError(fieldMessage(fe), fe.Field())
		apiErr.Err = err
		if len(errs) > 1 {
			apiErr.Details = map[string]any{"errors": len(errs)}
		}
		return apiErr
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apierrors.NewValidationError("parameters are required", "")
	}
	return apierrors.NewValidationError(err.Error(), "")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation", fe.Field())
	}
}

// requireID rejects an empty path identifier before any request is sent.
func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apierrors.NewValidationError(field+" is required", field)
	}
	return nil
}
