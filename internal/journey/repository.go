package journey

import (
	"context"
	"errors"

	"github.com/fekuna/agritrace-service/internal/model"
)

// ErrDuplicate is returned by Create when a journey already exists for the batch.
var ErrDuplicate = errors.New("journey already exists")

type Repository interface {
	// Create stores the journey header together with its first movement.
	Create(ctx context.Context, j *model.Journey, seed *model.Movement) error
	// Find returns the header without movements, or nil, nil when unknown.
	Find(ctx context.Context, batchID string) (*model.Journey, error)
	// Append stores m and the updated header in one step.
	Append(ctx context.Context, j *model.Journey, m *model.Movement) error

	ListMovements(ctx context.Context, batchID string) ([]model.Movement, error)
	CountMovements(ctx context.Context, batchID string) (int, error)
	// MovementAt and LatestMovement return nil, nil when no such movement exists.
	MovementAt(ctx context.Context, batchID string, index int) (*model.Movement, error)
	LatestMovement(ctx context.Context, batchID string) (*model.Movement, error)
}
