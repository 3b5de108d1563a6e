package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/baharkarakas/point-service/internal/metrics"
	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/baharkarakas/point-service/internal/worker"
)

// PointService is the balance-mutation engine. Mutations for one user are
// serialized through the lock registry; reads and mutations for different
// users proceed in parallel. The balance store and history log only need to
// be safe for concurrent use across keys.
type PointService struct {
	balances repo.Balances
	history  repo.Histories
	audit    repo.AuditLogs
	locks    *lock.Registry
	wp       *worker.Pool
	maxPoint int64
}

func NewPointService(b repo.Balances, h repo.Histories, a repo.AuditLogs, locks *lock.Registry, wp *worker.Pool, maxPoint int64) *PointService {
	if maxPoint <= 0 {
		maxPoint = models.MaxPointDefault
	}
	return &PointService{balances: b, history: h, audit: a, locks: locks, wp: wp, maxPoint: maxPoint}
}

// GetPoint returns the current balance for userID. It does not take the
// per-key lock: a read concurrent with a mutation may observe either side
// of it. Only mutation ordering is guaranteed.
func (s *PointService) GetPoint(ctx context.Context, userID int64) (models.UserPoint, error) {
	p, err := s.balances.SelectByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.UserPoint{}, ErrNotFound
	}
	return p, err
}

// History returns all history entries for userID in append order. A key the
// log has never seen fails with ErrNotFound; a committed mutation always
// leaves at least one entry, so "known user, empty history" cannot occur.
func (s *PointService) History(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	hs, err := s.history.SelectAllByUser(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return hs, err
}

// Charge adds amount to the user's balance and appends a CHARGE entry,
// holding the user's lock across read, validation, upsert and append.
func (s *PointService) Charge(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	if amount <= 0 {
		metrics.PointOperationsFailed.WithLabelValues("invalid_amount").Inc()
		return models.UserPoint{}, ErrInvalidAmount
	}
	// cooperative cancellation: checked before the lock only; once the
	// lock is held the operation runs to completion
	if err := ctx.Err(); err != nil {
		return models.UserPoint{}, err
	}

	mu := s.locks.For(userID)
	mu.Lock()
	defer mu.Unlock()

	current, err := s.balances.SelectByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.rejected(userID, "charge", amount, "unknown_user")
			return models.UserPoint{}, ErrUnknownUser
		}
		return models.UserPoint{}, err
	}

	// headroom compare instead of current+amount: the sum can wrap for a
	// huge amount and slip past the cap as a negative balance
	if amount > s.maxPoint-current.Amount {
		s.rejected(userID, "charge", amount, "limit_exceeded")
		return models.UserPoint{}, &LimitExceededError{
			UserID: userID, Current: current.Amount, Requested: amount, Max: s.maxPoint,
		}
	}

	updated, err := s.balances.Upsert(ctx, userID, current.Amount+amount)
	if err != nil {
		metrics.PointOperationsFailed.WithLabelValues("persistence").Inc()
		return models.UserPoint{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	s.appendHistory(ctx, updated, models.KindCharge)
	metrics.PointOperationsTotal.WithLabelValues("charge").Inc()
	s.auditAsync(userID, "charge_applied", map[string]any{"amount": amount, "balance": updated.Amount})
	return updated, nil
}

// Use subtracts amount from the user's balance and appends a USE entry.
// Same locking discipline as Charge.
func (s *PointService) Use(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	if amount <= 0 {
		metrics.PointOperationsFailed.WithLabelValues("invalid_amount").Inc()
		return models.UserPoint{}, ErrInvalidAmount
	}
	if err := ctx.Err(); err != nil {
		return models.UserPoint{}, err
	}

	mu := s.locks.For(userID)
	mu.Lock()
	defer mu.Unlock()

	current, err := s.balances.SelectByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.rejected(userID, "use", amount, "unknown_user")
			return models.UserPoint{}, ErrUnknownUser
		}
		return models.UserPoint{}, err
	}

	if current.Amount-amount < 0 {
		s.rejected(userID, "use", amount, "insufficient_balance")
		return models.UserPoint{}, &InsufficientBalanceError{
			UserID: userID, Available: current.Amount, Requested: amount,
		}
	}

	updated, err := s.balances.Upsert(ctx, userID, current.Amount-amount)
	if err != nil {
		metrics.PointOperationsFailed.WithLabelValues("persistence").Inc()
		return models.UserPoint{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	s.appendHistory(ctx, updated, models.KindUse)
	metrics.PointOperationsTotal.WithLabelValues("use").Inc()
	s.auditAsync(userID, "use_applied", map[string]any{"amount": amount, "balance": updated.Amount})
	return updated, nil
}

// appendHistory logs the committed mutation. The balance upsert has already
// committed by the time this runs, so an append failure is surfaced through
// logs and metrics rather than rolled back. Known limitation of the
// two-step store design.
func (s *PointService) appendHistory(ctx context.Context, updated models.UserPoint, kind models.TransactionKind) {
	err := s.history.Insert(ctx, updated.UserID, updated.Amount, kind, updated.LastUpdatedAt)
	if err != nil {
		slog.Error("history append failed after committed balance update",
			"user_id", updated.UserID, "kind", kind, "err", err)
		metrics.HistoryAppendFailures.Inc()
	}
}

func (s *PointService) rejected(userID int64, op string, amount int64, reason string) {
	metrics.PointOperationsFailed.WithLabelValues(reason).Inc()
	s.auditAsync(userID, op+"_rejected", map[string]any{"amount": amount, "reason": reason})
}

func (s *PointService) auditAsync(userID int64, action string, details map[string]any) {
	id := strconv.FormatInt(userID, 10)
	entry := models.AuditLog{EntityType: "point", EntityID: &id, Action: action, Details: details}
	s.wp.Submit(func() {
		if err := s.audit.Create(context.Background(), entry); err != nil {
			slog.Error("audit write failed", "action", action, "err", err)
		}
	})
}
