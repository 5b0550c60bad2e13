// Package store opens the repositories for the configured backend.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/agritrace-service/config"
	"github.com/fekuna/agritrace-service/internal/batch"
	batchRepo "github.com/fekuna/agritrace-service/internal/batch/repository"
	"github.com/fekuna/agritrace-service/internal/journey"
	journeyRepo "github.com/fekuna/agritrace-service/internal/journey/repository"
	"github.com/fekuna/agritrace-service/internal/schema"
	"github.com/fekuna/agritrace-service/pkg/database/postgres"
	"github.com/fekuna/agritrace-service/pkg/database/sqlite"
	"github.com/jmoiron/sqlx"
)

type Store struct {
	Driver   string
	DB       *sqlx.DB // nil for the memory backend
	Batches  batch.Repository
	Journeys journey.Repository
}

func Open(cfg *config.Config) (*Store, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return &Store{
			Driver:   config.StoreMemory,
			Batches:  batchRepo.NewMemoryRepository(),
			Journeys: journeyRepo.NewMemoryRepository(),
		}, nil
	case config.StorePostgres:
		db, err = postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
	case config.StoreSQLite:
		db, err = sqlite.NewSQLite(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	return &Store{
		Driver:   cfg.Store.Driver,
		DB:       db,
		Batches:  batchRepo.NewSQLRepository(db),
		Journeys: journeyRepo.NewSQLRepository(db),
	}, nil
}

// Migrate applies the schema. It is a no-op for the memory backend.
func (s *Store) Migrate(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return schema.Migrate(ctx, s.DB, s.Driver)
}

func (s *Store) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
