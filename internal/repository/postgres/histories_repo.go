package postgres

import (
	"context"
	"time"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type historiesRepo struct{ pool *pgxpool.Pool }

func (r *historiesRepo) Insert(ctx context.Context, userID, amount int64, kind models.TransactionKind, at time.Time) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO point_histories (user_id, amount, kind, created_at)
		 VALUES ($1, $2, $3, $4)`,
		userID, amount, kind, at,
	)
	return err
}

func (r *historiesRepo) SelectAllByUser(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, amount, kind, created_at
		   FROM point_histories
		  WHERE user_id=$1
		  ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PointHistory
	for rows.Next() {
		var h models.PointHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.Amount, &h.Kind, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// never charged vs. charged-and-logged: an unseen key is a miss
	if len(out) == 0 {
		return nil, repo.ErrNotFound
	}
	return out, nil
}
