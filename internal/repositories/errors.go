package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It wraps the underlying driver error so the cause stays visible.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert violates a unique constraint,
	// e.g. a second sale row for the same item.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository writes
// can run standalone or inside a transaction owned by the service layer.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}
