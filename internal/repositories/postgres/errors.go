// Package postgres implements the storage repositories over PostgreSQL.
// Supabase and Xata endpoints speak the Postgres wire protocol, so this
// adapter covers them through their connection strings.
package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
