package models

import "time"

// MaxPointDefault is the balance cap applied when MAX_POINT is not configured.
const MaxPointDefault int64 = 10000

type TransactionKind string

const (
	KindCharge TransactionKind = "CHARGE"
	KindUse    TransactionKind = "USE"
)

// UserPoint is the live balance row for one user. The balance store is
// authoritative; 0 <= Amount <= max point after any committed mutation.
type UserPoint struct {
	UserID        int64     `json:"user_id"`
	Amount        int64     `json:"amount"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// PointHistory is one immutable history entry. Amount is the balance
// *after* the operation, not the delta.
type PointHistory struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Amount    int64           `json:"amount"`
	Kind      TransactionKind `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}
