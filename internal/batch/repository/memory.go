package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/fekuna/agritrace-service/internal/batch"
	"github.com/fekuna/agritrace-service/internal/model"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	batches map[string]model.Batch
	order   []string
	byOwner map[string][]string
}

var _ batch.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		batches: make(map[string]model.Batch),
		byOwner: make(map[string][]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, b *model.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[b.BatchID]; ok {
		return batch.ErrDuplicate
	}
	b.Seq = int64(len(r.order) + 1)
	r.batches[b.BatchID] = *b
	r.order = append(r.order, b.BatchID)
	r.byOwner[b.Registrant] = append(r.byOwner[b.Registrant], b.BatchID)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, batchID string) (*model.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batches[batchID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *MemoryRepository) ListIDs(_ context.Context, offset, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.order) {
		return []string{}, nil
	}
	end := len(r.order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]string, end-offset)
	copy(out, r.order[offset:end])
	return out, nil
}

func (r *MemoryRepository) ListIDsByOwner(_ context.Context, owner string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[owner]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *MemoryRepository) SetActive(_ context.Context, batchID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[batchID]
	if !ok {
		return fmt.Errorf("batch %s does not exist", batchID)
	}
	b.IsActive = active
	r.batches[batchID] = b
	return nil
}
