package repository

import (
	"context"
	"time"

	"github.com/baharkarakas/point-service/internal/models"
)

// Balances is the key -> latest-balance table. Implementations must be safe
// for concurrent use across keys; the engine serializes per key on top.
type Balances interface {
	// SelectByID returns the current row for userID, or ErrNotFound.
	SelectByID(ctx context.Context, userID int64) (models.UserPoint, error)

	// Upsert creates or overwrites the row for userID with amount and a
	// fresh last_updated_at, returning the committed row.
	Upsert(ctx context.Context, userID, amount int64) (models.UserPoint, error)
}

// Histories is the append-only log of committed mutations. No update, no
// delete; corrections would be new entries.
type Histories interface {
	Insert(ctx context.Context, userID, amount int64, kind models.TransactionKind, at time.Time) error

	// SelectAllByUser returns all entries for userID in append order.
	// A key the log has never seen returns ErrNotFound rather than an
	// empty slice.
	SelectAllByUser(ctx context.Context, userID int64) ([]models.PointHistory, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
