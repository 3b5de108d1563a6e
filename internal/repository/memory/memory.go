// Package memory holds in-memory implementations of the store interfaces.
// They back the tests and the DATABASE_URL=memory dev mode; no durability.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
)

type Repositories struct {
	Balances  *BalanceTable
	Histories *HistoryLog
	AuditLogs *AuditTrail
}

func NewRepositories() Repositories {
	return Repositories{
		Balances:  NewBalanceTable(),
		Histories: NewHistoryLog(),
		AuditLogs: NewAuditTrail(),
	}
}

// BalanceTable is a mutex-guarded user_id -> balance map.
type BalanceTable struct {
	mu   sync.RWMutex
	rows map[int64]models.UserPoint
}

func NewBalanceTable() *BalanceTable {
	return &BalanceTable{rows: make(map[int64]models.UserPoint)}
}

func (t *BalanceTable) SelectByID(_ context.Context, userID int64) (models.UserPoint, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.rows[userID]
	if !ok {
		return models.UserPoint{}, repo.ErrNotFound
	}
	return p, nil
}

func (t *BalanceTable) Upsert(_ context.Context, userID, amount int64) (models.UserPoint, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := models.UserPoint{UserID: userID, Amount: amount, LastUpdatedAt: time.Now()}
	t.rows[userID] = p
	return p, nil
}

// HistoryLog is an append-only slice per user. Entries are never mutated or
// removed once appended.
type HistoryLog struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64][]models.PointHistory
}

func NewHistoryLog() *HistoryLog {
	return &HistoryLog{entries: make(map[int64][]models.PointHistory)}
}

func (l *HistoryLog) Insert(_ context.Context, userID, amount int64, kind models.TransactionKind, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.entries[userID] = append(l.entries[userID], models.PointHistory{
		ID:        l.nextID,
		UserID:    userID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: at,
	})
	return nil
}

func (l *HistoryLog) SelectAllByUser(_ context.Context, userID int64) ([]models.PointHistory, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries, ok := l.entries[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := make([]models.PointHistory, len(entries))
	copy(out, entries)
	return out, nil
}

// AuditTrail collects audit entries; All exists so tests can assert on them.
type AuditTrail struct {
	mu      sync.RWMutex
	entries []models.AuditLog
}

func NewAuditTrail() *AuditTrail { return &AuditTrail{} }

func (a *AuditTrail) Create(_ context.Context, l models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	a.entries = append(a.entries, l)
	return nil
}

func (a *AuditTrail) All() []models.AuditLog {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.AuditLog, len(a.entries))
	copy(out, a.entries)
	return out
}
