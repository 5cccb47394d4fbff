package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sakif/booking/internal/apperror"
)

// redirectResponse tells the page script where to go after a delete.
type redirectResponse struct {
	Redirect string `json:"redirect"`
}

// writeJSON sends data as JSON with the given status. Headers must be set
// before WriteHeader; anything after that is ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// statusFor maps a domain error to an HTTP status. Anything that is not a
// classified AppError is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorPage fills errors/error for statuses without a page of their own.
type errorPage struct {
	Status int
	Text   string
}

// Error renders the error page matching err. The error text itself is only
// logged; users see the 404 page, the 500 page, or a generic page titled
// with the status text.
func (v *View) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusNotFound {
		v.NotFound(w, r)
		return
	}

	v.logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	if status == http.StatusInternalServerError {
		v.Render(w, r, status, "errors/500", "Error", nil)
		return
	}
	text := http.StatusText(status)
	v.Render(w, r, status, "errors/error", text, errorPage{Status: status, Text: text})
}
