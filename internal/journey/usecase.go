package journey

import (
	"context"

	"github.com/fekuna/agritrace-service/internal/journey/dto"
	"github.com/fekuna/agritrace-service/internal/model"
)

type UseCase interface {
	StartJourney(ctx context.Context, input *dto.StartJourneyInput) (*model.Journey, error)
	UpdateStage(ctx context.Context, input *dto.UpdateStageInput) (*model.Movement, error)
	GetJourney(ctx context.Context, batchID string) (*model.Journey, error)
	GetCurrentStage(ctx context.Context, batchID string) (model.Stage, error)
	GetMovementCount(ctx context.Context, batchID string) (int, error)
	GetMovement(ctx context.Context, batchID string, index int) (*model.Movement, error)
	GetAllMovements(ctx context.Context, batchID string) ([]model.Movement, error)
	IsComplete(ctx context.Context, batchID string) (bool, error)
	GetLatestConditions(ctx context.Context, batchID string) (*model.Conditions, error)
}
