package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error variables shared by all repositories.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when an insert hits a unique constraint.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrReferenceNotFound is returned when an insert references a missing row.
	ErrReferenceNotFound = errors.New("referenced record not found")
)

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError converts Postgres constraint violations into repository errors
// so that callers can match them with errors.Is instead of inspecting codes.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAlreadyExists
		case pgForeignKeyViolation:
			return ErrReferenceNotFound
		}
	}
	return err
}
