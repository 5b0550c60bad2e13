package batch

import (
	"context"
	"errors"

	"github.com/fekuna/agritrace-service/internal/model"
)

// ErrDuplicate is returned by Create when the batch id is already taken.
var ErrDuplicate = errors.New("batch already exists")

type Repository interface {
	// Create stores a new batch. Implementations assign Seq and return ErrDuplicate on a taken id.
	Create(ctx context.Context, b *model.Batch) error
	// FindByID returns nil, nil when the batch is unknown.
	FindByID(ctx context.Context, batchID string) (*model.Batch, error)

	// Ordered views, oldest registration first
	ListIDs(ctx context.Context, offset, limit int) ([]string, error)
	ListIDsByOwner(ctx context.Context, owner string) ([]string, error)
	Count(ctx context.Context) (int, error)

	SetActive(ctx context.Context, batchID string, active bool) error
}
