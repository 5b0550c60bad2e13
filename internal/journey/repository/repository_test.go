package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/agritrace-service/internal/journey"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/internal/schema"
	"github.com/fekuna/agritrace-service/pkg/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func repositories(t *testing.T) map[string]journey.Repository {
	t.Helper()
	db, err := sqlite.NewSQLite(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, schema.Migrate(context.Background(), db, "sqlite"))

	return map[string]journey.Repository{
		"memory": NewMemoryRepository(),
		"sqlite": NewSQLRepository(db),
	}
}

func movement(batchID string, idx int, stage model.Stage) *model.Movement {
	return &model.Movement{
		ID:          fmt.Sprintf("%s-%d", batchID, idx),
		BatchID:     batchID,
		Index:       idx,
		Stage:       stage,
		Handler:     "farmer-1",
		HandlerName: "FarmA",
		Location:    "LocA",
		Notes:       "note",
		Temperature: -12,
		Humidity:    65000,
		RecordedAt:  t0.Add(time.Duration(idx) * time.Hour),
	}
}

func TestRepository(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			missing, err := repo.Find(ctx, "B1")
			require.NoError(t, err)
			assert.Nil(t, missing)

			j := &model.Journey{BatchID: "B1", CurrentStage: model.StageHarvested, StartedAt: t0, UpdatedAt: t0}
			require.NoError(t, repo.Create(ctx, j, movement("B1", 0, model.StageHarvested)))

			err = repo.Create(ctx, j, movement("B1", 0, model.StageHarvested))
			assert.ErrorIs(t, err, journey.ErrDuplicate)

			got, err := repo.Find(ctx, "B1")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, model.StageHarvested, got.CurrentStage)
			assert.False(t, got.IsComplete)
			assert.True(t, t0.Equal(got.StartedAt))

			j.CurrentStage = model.StageSold
			j.IsComplete = true
			j.UpdatedAt = t0.Add(time.Hour)
			require.NoError(t, repo.Append(ctx, j, movement("B1", 1, model.StageSold)))

			got, err = repo.Find(ctx, "B1")
			require.NoError(t, err)
			assert.Equal(t, model.StageSold, got.CurrentStage)
			assert.True(t, got.IsComplete)

			n, err := repo.CountMovements(ctx, "B1")
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			all, err := repo.ListMovements(ctx, "B1")
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, model.StageHarvested, all[0].Stage)
			assert.Equal(t, model.StageSold, all[1].Stage)
			assert.Equal(t, int16(-12), all[1].Temperature)
			assert.Equal(t, uint16(65000), all[1].Humidity)
			assert.Equal(t, "B1-1", all[1].ID)

			m, err := repo.MovementAt(ctx, "B1", 1)
			require.NoError(t, err)
			require.NotNil(t, m)
			assert.Equal(t, model.StageSold, m.Stage)
			assert.True(t, t0.Add(time.Hour).Equal(m.RecordedAt))

			m, err = repo.MovementAt(ctx, "B1", 5)
			require.NoError(t, err)
			assert.Nil(t, m)

			latest, err := repo.LatestMovement(ctx, "B1")
			require.NoError(t, err)
			require.NotNil(t, latest)
			assert.Equal(t, 1, latest.Index)

			latest, err = repo.LatestMovement(ctx, "B2")
			require.NoError(t, err)
			assert.Nil(t, latest)

			none, err := repo.ListMovements(ctx, "B2")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestRepository_AppendConflictKeepsHeader(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			j := &model.Journey{BatchID: "B1", CurrentStage: model.StageHarvested, StartedAt: t0, UpdatedAt: t0}
			require.NoError(t, repo.Create(ctx, j, movement("B1", 0, model.StageHarvested)))

			next := *j
			next.CurrentStage = model.StageInTransit
			stale := movement("B1", 0, model.StageInTransit)
			stale.ID = "other"
			assert.Error(t, repo.Append(ctx, &next, stale))

			got, err := repo.Find(ctx, "B1")
			require.NoError(t, err)
			assert.Equal(t, model.StageHarvested, got.CurrentStage)

			n, err := repo.CountMovements(ctx, "B1")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}
