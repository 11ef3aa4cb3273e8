package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/example/arena-booking/internal/persistence"
)

func TestMapRepoError(t *testing.T) {
	opaque := errors.New("disk on fire")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found", in: persistence.ErrNotFound, want: ErrNotFound},
		{name: "conflict", in: persistence.ErrConflict, want: ErrConflict},
		{name: "duplicate", in: persistence.ErrDuplicate, want: ErrAlreadyExists},
		{name: "dangling reference", in: persistence.ErrForeignKeyViolation, want: ErrNotFound},
		{name: "wrapped sentinel", in: fmt.Errorf("get session: %w", persistence.ErrNotFound), want: ErrNotFound},
		{name: "passthrough", in: opaque, want: opaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapRepoError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	var empty *ValidationError
	if empty.HasErrors() {
		t.Fatal("nil receiver must report no errors")
	}

	vErr := &ValidationError{}
	if vErr.HasErrors() {
		t.Fatal("fresh value must report no errors")
	}
	vErr.add("duration_min", "must be positive")
	if !vErr.HasErrors() {
		t.Fatal("expected recorded error")
	}
	if vErr.FieldErrors["duration_min"] != "must be positive" {
		t.Fatalf("FieldErrors = %v", vErr.FieldErrors)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrForbidden, "forbidden"},
		{ErrNotFound, "not_found"},
		{ErrConflict, "conflict"},
		{ErrAlreadyExists, "already_exists"},
		{ErrInvalidCredentials, "invalid_credentials"},
		{ErrInvalidToken, "invalid_token"},
		{&ValidationError{FieldErrors: map[string]string{"name": "required"}}, "validation"},
		{errors.New("boom"), "unexpected"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
