package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation indica si el error proviene de una restricción de unicidad,
// ya venga como *pgconn.PgError o aplanado en el texto del mensaje.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return err != nil && strings.Contains(err.Error(), uniqueViolationCode)
}
