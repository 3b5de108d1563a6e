package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/baharkarakas/point-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceTableMissBeforeUpsert(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewBalanceTable()

	_, err := tbl.SelectByID(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	created, err := tbl.Upsert(ctx, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), created.Amount)
	assert.False(t, created.LastUpdatedAt.IsZero())

	got, err := tbl.SelectByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestBalanceTableUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewBalanceTable()

	_, err := tbl.Upsert(ctx, 7, 100)
	require.NoError(t, err)
	updated, err := tbl.Upsert(ctx, 7, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(30), updated.Amount)
}

func TestHistoryLogAppendOrderAndIDs(t *testing.T) {
	ctx := context.Background()
	log := memory.NewHistoryLog()

	now := time.Now()
	require.NoError(t, log.Insert(ctx, 1, 100, models.KindCharge, now))
	require.NoError(t, log.Insert(ctx, 1, 70, models.KindUse, now))
	require.NoError(t, log.Insert(ctx, 2, 40, models.KindCharge, now))

	got, err := log.SelectAllByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.KindCharge, got[0].Kind)
	assert.Equal(t, models.KindUse, got[1].Kind)
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestHistoryLogUnknownUserIsAMiss(t *testing.T) {
	log := memory.NewHistoryLog()

	_, err := log.SelectAllByUser(context.Background(), 404)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestHistoryLogReturnsACopy(t *testing.T) {
	ctx := context.Background()
	log := memory.NewHistoryLog()
	require.NoError(t, log.Insert(ctx, 1, 100, models.KindCharge, time.Now()))

	first, err := log.SelectAllByUser(ctx, 1)
	require.NoError(t, err)
	first[0].Amount = -1

	again, err := log.SelectAllByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), again[0].Amount)
}
