package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/agritrace-service/internal/journey"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/database"
	"github.com/jmoiron/sqlx"
)

const insertMovement = `
    INSERT INTO movements (
        id, batch_id, idx, stage, handler, handler_name, location, notes,
        temperature, humidity, recorded_at
    )
    VALUES (
        :id, :batch_id, :idx, :stage, :handler, :handler_name, :location, :notes,
        :temperature, :humidity, :recorded_at
    )
`

const movementColumns = `id, batch_id, idx, stage, handler, handler_name, location, notes, temperature, humidity, recorded_at`

// SQLRepository keeps journey headers and movements in two tables; every
// mutation touches both inside one transaction.
type SQLRepository struct {
	DB *sqlx.DB
}

var _ journey.Repository = (*SQLRepository)(nil)

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, j *model.Journey, seed *model.Movement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO journeys (batch_id, current_stage, is_complete, started_at, updated_at)
        VALUES (:batch_id, :current_stage, :is_complete, :started_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, query, j); err != nil {
		if database.IsUniqueViolation(err) {
			return journey.ErrDuplicate
		}
		return fmt.Errorf("insert journey: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertMovement, seed); err != nil {
		return fmt.Errorf("insert seed movement: %w", err)
	}

	return tx.Commit()
}

func (r *SQLRepository) Find(ctx context.Context, batchID string) (*model.Journey, error) {
	var j model.Journey
	query := r.DB.Rebind(`
        SELECT batch_id, current_stage, is_complete, started_at, updated_at
        FROM journeys WHERE batch_id = ?
    `)
	if err := r.DB.GetContext(ctx, &j, query, batchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	j.StartedAt = j.StartedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()
	return &j, nil
}

func (r *SQLRepository) Append(ctx context.Context, j *model.Journey, m *model.Movement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertMovement, m); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("movement %d of %s already recorded: %w", m.Index, m.BatchID, err)
		}
		return fmt.Errorf("insert movement: %w", err)
	}

	query := `
        UPDATE journeys
        SET current_stage = :current_stage, is_complete = :is_complete, updated_at = :updated_at
        WHERE batch_id = :batch_id
    `
	res, err := tx.NamedExecContext(ctx, query, j)
	if err != nil {
		return fmt.Errorf("update journey: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("journey %s does not exist", j.BatchID)
	}

	return tx.Commit()
}

func (r *SQLRepository) ListMovements(ctx context.Context, batchID string) ([]model.Movement, error) {
	movements := []model.Movement{}
	query := r.DB.Rebind(`SELECT ` + movementColumns + ` FROM movements WHERE batch_id = ? ORDER BY idx`)
	if err := r.DB.SelectContext(ctx, &movements, query, batchID); err != nil {
		return nil, err
	}
	for i := range movements {
		movements[i].RecordedAt = movements[i].RecordedAt.UTC()
	}
	return movements, nil
}

func (r *SQLRepository) CountMovements(ctx context.Context, batchID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(`SELECT count(*) FROM movements WHERE batch_id = ?`), batchID)
	return count, err
}

func (r *SQLRepository) MovementAt(ctx context.Context, batchID string, index int) (*model.Movement, error) {
	query := r.DB.Rebind(`SELECT ` + movementColumns + ` FROM movements WHERE batch_id = ? AND idx = ?`)
	return r.getMovement(ctx, query, batchID, index)
}

func (r *SQLRepository) LatestMovement(ctx context.Context, batchID string) (*model.Movement, error) {
	query := r.DB.Rebind(`SELECT ` + movementColumns + ` FROM movements WHERE batch_id = ? ORDER BY idx DESC LIMIT 1`)
	return r.getMovement(ctx, query, batchID)
}

func (r *SQLRepository) getMovement(ctx context.Context, query string, args ...interface{}) (*model.Movement, error) {
	var m model.Movement
	if err := r.DB.GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.RecordedAt = m.RecordedAt.UTC()
	return &m, nil
}
