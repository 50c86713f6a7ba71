package repository

import (
	"context"

	"github.com/kalrend/warchest/internal/logger"
)

// rollbacker is the common slice of every Tx interface in this package.
type rollbacker interface {
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error. Rolling back
// an already committed transaction is a no-op, so services defer this
// unconditionally.
func SafeRollback(ctx context.Context, tx rollbacker) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
