package database

import (
	"context"
	"log"

	"gorm.io/gorm"
)

// WithSession runs fn against a request-scoped handle. The underlying
// connection is checked out from the pool on first use and returned when fn
// exits, so callers never hold a connection across unit-of-work boundaries.
// Failures are logged with the operation name and then propagated.
func (d *Database) WithSession(ctx context.Context, operation string, fn func(db *gorm.DB) error) error {
	if err := fn(d.db.WithContext(ctx)); err != nil {
		log.Printf("⚠️ %s failed: %v", operation, err)
		return WrapDBError(operation, err)
	}
	return nil
}

// WithTransaction runs fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics, so no partial write sequence ever becomes visible to other
// sessions. Rollback causes are logged with the operation name before the
// error is propagated to the caller.
func (d *Database) WithTransaction(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	err := d.db.WithContext(ctx).Transaction(fn)
	if err != nil {
		log.Printf("⚠️ %s rolled back: %v", operation, err)
		return WrapDBError(operation, err)
	}
	return nil
}
