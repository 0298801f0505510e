package core

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"activitycast/internal/types"
)

// Validator wraps go-playground/validator and converts failures into
// AppErrors carrying per-field details.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a Validator that reports JSON field names.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
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
	return &Validator{validate: v, logger: logger}
}

// ValidateStruct validates s. Field failures yield an AppError with code,
// keyed by field namespace in Details. Fields under "air_quality.aqi" or
// "aqi_series" report validation_invalid_aqi.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "request validation failed", err)
	}

	code := types.ErrCodeValidationInvalidRequest
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := trimNamespace(fe.Namespace())
		details[field] = describeFieldError(fe)
		if isAQIField(field) {
			code = types.ErrCodeValidationInvalidAQI
		}
	}

	return types.NewAppErrorWithDetails(code, "request validation failed", err, details)
}

// trimNamespace drops the root struct name from a validator namespace.
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func isAQIField(field string) bool {
	return strings.HasSuffix(field, "aqi") ||
		strings.HasPrefix(field, "aqi_history") ||
		strings.HasPrefix(field, "aqi_series")
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
