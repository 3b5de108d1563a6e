package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) SelectByID(ctx context.Context, userID int64) (models.UserPoint, error) {
	var p models.UserPoint
	err := r.pool.QueryRow(
		ctx,
		`SELECT user_id, amount, last_updated_at
		   FROM balances
		  WHERE user_id=$1`,
		userID,
	).Scan(&p.UserID, &p.Amount, &p.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserPoint{}, repo.ErrNotFound
	}
	return p, err
}

func (r *balancesRepo) Upsert(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	var p models.UserPoint
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO balances (user_id, amount, last_updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		    SET amount = EXCLUDED.amount,
		        last_updated_at = now()
		 RETURNING user_id, amount, last_updated_at`,
		userID, amount,
	).Scan(&p.UserID, &p.Amount, &p.LastUpdatedAt)
	return p, err
}
