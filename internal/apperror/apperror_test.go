package apperror

import (
	"errors"
	"testing"
)

// TABLE-DRIVEN TESTS:
// One slice of cases, one loop, one sub-test per case.

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("venue", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Persistence wraps ErrPersistence",
			err:       Persistence("create venue", errors.New("disk full")),
			target:    ErrPersistence,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("venue", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Persistence does NOT match ErrNotFound",
			err:       Persistence("delete venue", nil),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("artist", "abc123"),
			wantMessage: "artist not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("name", "name is required"),
			wantMessage: "name is required",
		},
		{
			name:        "Persistence hides the cause",
			err:         Persistence("create venue", errors.New("UNIQUE constraint failed: venues.id")),
			wantMessage: "could not create venue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedKeepsField(t *testing.T) {
	err := ValidationFailed("start_time", "Not a valid datetime value.")

	var appErr *AppError
	if !errors.As(error(err), &appErr) {
		t.Fatal("errors.As should find the *AppError")
	}
	if appErr.Field != "start_time" {
		t.Errorf("Field = %q, want %q", appErr.Field, "start_time")
	}
}

func TestPersistenceKeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Persistence("update venue", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("show", "x")) {
		t.Error("IsNotFound(NotFound) = false, want true")
	}
	if IsNotFound(Persistence("create show", nil)) {
		t.Error("IsNotFound(Persistence) = true, want false")
	}
}
