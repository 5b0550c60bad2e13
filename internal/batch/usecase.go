package batch

import (
	"context"

	"github.com/fekuna/agritrace-service/internal/batch/dto"
	"github.com/fekuna/agritrace-service/internal/model"
)

type UseCase interface {
	RegisterBatch(ctx context.Context, input *dto.RegisterBatchInput) (*model.Batch, error)
	GetBatch(ctx context.Context, batchID string) (*model.Batch, error)
	ListBatchesByOwner(ctx context.Context, owner string) ([]string, error)
	ListBatches(ctx context.Context, filters *dto.BatchFilters) ([]string, int, error)
	TotalBatchCount(ctx context.Context) (int, error)
	DeactivateBatch(ctx context.Context, input *dto.DeactivateBatchInput) error
	IsActive(ctx context.Context, batchID string) (bool, error)
	OwnerOf(ctx context.Context, batchID string) (string, error)
}
