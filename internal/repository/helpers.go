package repository

import (
	"database/sql"
	"errors"
)

// noRowsAsNil converts sql.ErrNoRows into a (nil, nil) result. Lookup
// misses are ordinary outcomes in this schema: a session that expired or
// was logged out, a section id from a stale dashboard tab, a credentials
// pair matching no admin row. The service layer decides which of those
// deserve a domain error.
func noRowsAsNil[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
