package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html

const (
	pgCodeUniqueViolation      = "23505"
	pgCodeForeignKeyViolation  = "23503"
	pgCodeSerializationFailure = "40001"
)

// IsUniqueViolationError checks if the error is a unique violation error
func IsUniqueViolationError(err error) bool {
	return hasPgCode(err, pgCodeUniqueViolation)
}

// IsForeignKeyViolationError checks if the error is a foreign key violation error
func IsForeignKeyViolationError(err error) bool {
	return hasPgCode(err, pgCodeForeignKeyViolation)
}

// IsSerializationFailureError reports whether a serializable transaction
// was aborted by the server and can be retried.
func IsSerializationFailureError(err error) bool {
	return hasPgCode(err, pgCodeSerializationFailure)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
