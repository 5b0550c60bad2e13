package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/agritrace-service/internal/batch"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/database"
	"github.com/jmoiron/sqlx"
)

// SQLRepository stores batches in Postgres or SQLite. Queries use '?' bindvars
// and are rebound for the driver.
type SQLRepository struct {
	DB *sqlx.DB
}

var _ batch.Repository = (*SQLRepository)(nil)

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, b *model.Batch) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO batches (
            batch_id, product_name, category, variety, quantity, harvest_date,
            registrant, farm_name, farm_location, is_active, registered_at
        )
        VALUES (
            :batch_id, :product_name, :category, :variety, :quantity, :harvest_date,
            :registrant, :farm_name, :farm_location, :is_active, :registered_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
		if database.IsUniqueViolation(err) {
			return batch.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	// read back the sequence; LastInsertId is not available on pgx
	var seq int64
	if err := tx.GetContext(ctx, &seq, tx.Rebind(`SELECT seq FROM batches WHERE batch_id = ?`), b.BatchID); err != nil {
		return fmt.Errorf("read batch seq: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	b.Seq = seq
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, batchID string) (*model.Batch, error) {
	var b model.Batch
	query := r.DB.Rebind(`SELECT * FROM batches WHERE batch_id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &b, query, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	b.HarvestDate = b.HarvestDate.UTC()
	b.RegisteredAt = b.RegisteredAt.UTC()
	return &b, nil
}

func (r *SQLRepository) ListIDs(ctx context.Context, offset, limit int) ([]string, error) {
	ids := []string{}
	query := `SELECT batch_id FROM batches ORDER BY seq`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	} else if offset > 0 {
		// SQLite needs a LIMIT before OFFSET; -1 means unbounded there and is rejected by Postgres
		if r.DB.DriverName() == "sqlite" {
			query += ` LIMIT -1 OFFSET ?`
		} else {
			query += ` OFFSET ?`
		}
		args = append(args, offset)
	}
	err := r.DB.SelectContext(ctx, &ids, r.DB.Rebind(query), args...)
	return ids, err
}

func (r *SQLRepository) ListIDsByOwner(ctx context.Context, owner string) ([]string, error) {
	ids := []string{}
	query := r.DB.Rebind(`SELECT batch_id FROM batches WHERE registrant = ? ORDER BY seq`)
	err := r.DB.SelectContext(ctx, &ids, query, owner)
	return ids, err
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM batches`)
	return count, err
}

func (r *SQLRepository) SetActive(ctx context.Context, batchID string, active bool) error {
	query := r.DB.Rebind(`UPDATE batches SET is_active = ? WHERE batch_id = ?`)
	res, err := r.DB.ExecContext(ctx, query, active, batchID)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("batch %s does not exist", batchID)
	}
	return nil
}
