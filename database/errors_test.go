package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"translated gorm error", gorm.ErrDuplicatedKey, true},
		{"wrapped translated error", fmt.Errorf("Create: %w", gorm.ErrDuplicatedKey), true},
		{"pq unique_violation", &pq.Error{Code: "23505"}, true},
		{"wrapped pq unique_violation", fmt.Errorf("Create: %w", &pq.Error{Code: "23505"}), true},
		{"pq other code", &pq.Error{Code: "23503"}, false},
		{"foreign key error", gorm.ErrForeignKeyViolated, false},
		{"unrelated error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateKey(tt.err); got != tt.want {
				t.Errorf("IsDuplicateKey(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"translated gorm error", gorm.ErrForeignKeyViolated, true},
		{"wrapped translated error", fmt.Errorf("Create: %w", gorm.ErrForeignKeyViolated), true},
		{"pq foreign_key_violation", &pq.Error{Code: "23503"}, true},
		{"pq other code", &pq.Error{Code: "23505"}, false},
		{"duplicate key error", gorm.ErrDuplicatedKey, false},
		{"unrelated error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsForeignKeyViolation(tt.err); got != tt.want {
				t.Errorf("IsForeignKeyViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrapDBError(t *testing.T) {
	if WrapDBError("Op", nil) != nil {
		t.Error("wrapping nil should return nil")
	}

	inner := errors.New("boom")
	err := WrapDBError("SaveForecasts", inner)

	var dbErr *DBError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *DBError, got %T", err)
	}
	if dbErr.Operation != "SaveForecasts" {
		t.Errorf("operation = %q, want SaveForecasts", dbErr.Operation)
	}
	if !errors.Is(err, inner) {
		t.Error("wrapped error should unwrap to the cause")
	}
}

func TestValidationErrorMessages(t *testing.T) {
	err := NewValidationError("username", "must not be empty")
	want := "validation failed for field 'username': must not be empty"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	err = NewValidationErrorWithValue("role", "unknown role", "superuser")
	want = "validation failed for field 'role': unknown role (value: superuser)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestNotFoundErrorMessages(t *testing.T) {
	if got := NewNotFoundError("user").Error(); got != "user not found" {
		t.Errorf("got %q", got)
	}
	if got := NewNotFoundErrorWithID("model", "abc").Error(); got != "model not found: abc" {
		t.Errorf("got %q", got)
	}
}
