// Package validation is the form-validation collaborator of the booking
// directory. It binds submitted form values into typed forms, validates
// them with go-playground/validator, and reports one message per failed
// field in form order.
//
// The service layer trusts what comes out of here and does not re-check
// business rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/booking/internal/apperror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var phonePattern = regexp.MustCompile(`^[0-9]{3}-?[0-9]{3}-?[0-9]{4}$`)

// FieldError is one failed form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the aggregated result of validating one form.
type Errors []FieldError

func (e Errors) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), ", ")
}

// Unwrap classifies every validation failure as apperror.ErrValidation.
func (e Errors) Unwrap() error {
	return apperror.ErrValidation
}

// Messages renders each failure as "field: message".
func (e Errors) Messages() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return out
}

// Has reports whether field failed validation. Templates use it to mark inputs.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// GetValidator returns the shared validator with the directory's custom
// tags registered. Safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their form name, not the Go field name.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		mustRegister("state", func(fl validator.FieldLevel) bool {
			return IsState(fl.Field().String())
		})
		mustRegister("genre", func(fl validator.FieldLevel) bool {
			return IsGenre(fl.Field().String())
		})
		mustRegister("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		mustRegister("showtime", func(fl validator.FieldLevel) bool {
			_, err := ParseStartTime(fl.Field().String())
			return err == nil
		})
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registering %q: %v", tag, err))
	}
}

// Struct validates a bound form. It returns nil or Errors.
func Struct(form any) error {
	err := GetValidator().Struct(form)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return Errors{{Field: "form", Message: err.Error()}}
	}

	var out Errors
	seen := make(map[string]bool)
	for _, fe := range validationErrs {
		// genres[2] → genres: one message per form field, not per element.
		field, _, _ := strings.Cut(fe.Field(), "[")
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, FieldError{Field: field, Message: translateError(fe)})
	}
	return out
}

var errorMessages = map[string]string{
	"required": "This field is required.",
	"url":      "Invalid URL.",
	"state":    "Not a valid choice.",
	"genre":    "Not a valid choice.",
	"phone":    "Invalid phone number.",
	"showtime": "Not a valid datetime value.",
}

func translateError(fe validator.FieldError) string {
	if msg, ok := errorMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Select at least %s.", fe.Param())
		}
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	default:
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}

// Start time layouts accepted from the show form, in order of preference.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseStartTime parses a submitted show start time. Values carry no zone
// and are interpreted as UTC, the zone start times are stored in.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("validation: unrecognised start time %q", s)
}
