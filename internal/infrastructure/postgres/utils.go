package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode SQLSTATE de unique_violation en PostgreSQL.
const uniqueViolationCode = "23505"

// isUniqueViolation reporta si err proviene de una violación de constraint
// UNIQUE. El fallback por texto cubre errores envueltos que no exponen un
// *pgconn.PgError en la cadena.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}
