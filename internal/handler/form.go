package handler

import (
	"errors"
	"strings"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/validation"
)

// fixErrorsNotice is the flash shown above a form that failed validation.
func fixErrorsNotice(errs validation.Errors) string {
	return "Please fix the following errors: " + strings.Join(errs.Messages(), ", ")
}

// validateForm runs the form validator and returns the per-field failures,
// or nil when the form is valid.
func validateForm(form any) validation.Errors {
	return fieldErrors(validation.Struct(form))
}

// fieldErrors flattens a validation failure into per-field errors. A single
// *apperror.AppError keeps its Field; anything else is reported against "form".
func fieldErrors(err error) validation.Errors {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "" {
		return validation.Errors{{Field: appErr.Field, Message: appErr.Message}}
	}
	return validation.Errors{{Field: "form", Message: err.Error()}}
}

type venueFormData struct {
	ID     string
	Form   validation.VenueForm
	Errors validation.Errors
}

type artistFormData struct {
	ID     string
	Form   validation.ArtistForm
	Errors validation.Errors
}
