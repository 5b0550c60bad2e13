package store

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/agritrace-service/config"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	for _, driver := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.LoadEnv()
			cfg.Store.Driver = driver
			cfg.SQLite.Path = sqlite.MemoryPath

			s, err := Open(cfg)
			require.NoError(t, err)
			defer s.Close()

			ctx := context.Background()
			require.NoError(t, s.Migrate(ctx))
			require.NoError(t, s.Migrate(ctx))
			require.NoError(t, s.Ping(ctx))

			now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
			require.NoError(t, s.Batches.Create(ctx, &model.Batch{
				BatchID:      "B1",
				ProductName:  "Tomato",
				Quantity:     10,
				HarvestDate:  now,
				Registrant:   "farmer-1",
				IsActive:     true,
				RegisteredAt: now,
			}))
			n, err := s.Batches.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.LoadEnv()
	cfg.Store.Driver = "mongo"

	_, err := Open(cfg)
	assert.Error(t, err)
}
