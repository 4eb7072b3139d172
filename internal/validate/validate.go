// Package validate wraps go-playground/validator with the custom rules
// used by the admission gate.
package validate

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var global = New()

// New builds a validator with the tracker's custom rules registered:
//
//	future   - time.Time at or after time.Now()
//	positive - integer-kind field greater than zero
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("future", validateFuture)
	_ = v.RegisterValidation("positive", validatePositive)
	return v
}

func validateFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && !t.Before(time.Now())
}

func validatePositive(fl validator.FieldLevel) bool {
	return fl.Field().Int() > 0
}

// FieldError reports the first failed rule of a Struct call.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required":
		return "field is required: " + e.Field
	case "future":
		return "date must be in the future: " + e.Field
	case "positive":
		return "value must be positive: " + e.Field
	default:
		return "invalid value: " + e.Field
	}
}

// Struct validates v against its struct tags and returns a *FieldError
// for the first violation, or nil.
func Struct(v any) error {
	err := global.Struct(v)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrs) == 0 {
		return err
	}
	ve := vErrs[0]
	return &FieldError{Field: ve.Field(), Tag: ve.Tag()}
}
