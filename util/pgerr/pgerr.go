package pgerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueField reports whether err is a Postgres unique violation and, if so,
// the human-readable field name taken from the constraint.
func UniqueField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	cn := strings.ToLower(pgErr.ConstraintName)
	switch {
	case strings.Contains(cn, "email"):
		return "email", true
	case strings.Contains(cn, "plate"):
		return "plate", true
	case strings.Contains(cn, "name"):
		return "name", true
	case strings.Contains(cn, "reservation"):
		return "reservation_id", true
	}
	return "field", true
}
