// Package repository implements the persistence ports on SQLite.
package repository

import (
	"context"
	"database/sql"

	"github.com/oklog/ulid/v2"
)

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type contextKey string

// txKey carries an open transaction through the context so a repository
// call participates in it instead of using the shared pool.
const txKey = contextKey("tx")

// WithTx returns a context whose repository calls run inside tx.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// InTx reports whether ctx already carries an open transaction.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(*sql.Tx)
	return ok
}

func executorFrom(ctx context.Context, db *sql.DB) executor {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return tx
	}
	return db
}

// newID mints a sortable document ID. ULIDs keep insertion order without a
// database sequence, which keeps IDs opaque strings end to end.
func newID() string {
	return ulid.Make().String()
}
