package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/fekuna/agritrace-service/internal/journey"
	"github.com/fekuna/agritrace-service/internal/model"
)

type entry struct {
	header    model.Journey
	movements []model.Movement
}

type MemoryRepository struct {
	mu       sync.RWMutex
	journeys map[string]*entry
}

var _ journey.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{journeys: make(map[string]*entry)}
}

func (r *MemoryRepository) Create(_ context.Context, j *model.Journey, seed *model.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.journeys[j.BatchID]; ok {
		return journey.ErrDuplicate
	}
	header := *j
	header.Movements = nil
	r.journeys[j.BatchID] = &entry{
		header:    header,
		movements: []model.Movement{*seed},
	}
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, batchID string) (*model.Journey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.journeys[batchID]
	if !ok {
		return nil, nil
	}
	j := e.header
	return &j, nil
}

func (r *MemoryRepository) Append(_ context.Context, j *model.Journey, m *model.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.journeys[j.BatchID]
	if !ok {
		return fmt.Errorf("journey %s does not exist", j.BatchID)
	}
	if m.Index != len(e.movements) {
		return fmt.Errorf("movement index %d does not follow %d", m.Index, len(e.movements)-1)
	}
	e.movements = append(e.movements, *m)
	header := *j
	header.Movements = nil
	e.header = header
	return nil
}

func (r *MemoryRepository) ListMovements(_ context.Context, batchID string) ([]model.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.journeys[batchID]
	if !ok {
		return []model.Movement{}, nil
	}
	out := make([]model.Movement, len(e.movements))
	copy(out, e.movements)
	return out, nil
}

func (r *MemoryRepository) CountMovements(_ context.Context, batchID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.journeys[batchID]
	if !ok {
		return 0, nil
	}
	return len(e.movements), nil
}

func (r *MemoryRepository) MovementAt(_ context.Context, batchID string, index int) (*model.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.journeys[batchID]
	if !ok || index < 0 || index >= len(e.movements) {
		return nil, nil
	}
	m := e.movements[index]
	return &m, nil
}

func (r *MemoryRepository) LatestMovement(_ context.Context, batchID string) (*model.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.journeys[batchID]
	if !ok || len(e.movements) == 0 {
		return nil, nil
	}
	m := e.movements[len(e.movements)-1]
	return &m, nil
}
