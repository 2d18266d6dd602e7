package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

// PgCode extracts the SQLSTATE from a Postgres error, or "".
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports a violation of the booking overlap exclusion
// constraints.
func IsExclusionConflict(err error) bool {
	return PgCode(err) == pgExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return PgCode(err) == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return PgCode(err) == pgForeignKeyViolation
}
