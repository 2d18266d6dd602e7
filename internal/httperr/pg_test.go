package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsExclusionConflict_WrappedPgError(t *testing.T) {
	err := fmt.Errorf("create booking: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_client_no_overlap"})

	if !IsExclusionConflict(err) {
		t.Fatalf("expected exclusion conflict to be detected")
	}
	if IsUniqueViolation(err) {
		t.Fatalf("exclusion conflict must not be reported as unique violation")
	}
	if PgCode(err) != "23P01" {
		t.Fatalf("unexpected code %q", PgCode(err))
	}
}

func TestPgCode_NonPgError(t *testing.T) {
	if PgCode(errors.New("boom")) != "" {
		t.Fatalf("expected empty code for plain errors")
	}
	if IsExclusionConflict(nil) {
		t.Fatalf("nil is not a conflict")
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrBusiness("invalid_status"))

	code, ok := CodeOf(err)
	if !ok || code != "invalid_status" {
		t.Fatalf("got %q %v", code, ok)
	}
	if !IsBusiness(err, "invalid_status") {
		t.Fatalf("IsBusiness should match wrapped error")
	}
	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Fatalf("plain error has no business code")
	}
}
