package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/agritrace-service/internal/access"
	"github.com/fekuna/agritrace-service/internal/event"
	"github.com/fekuna/agritrace-service/internal/journey"
	"github.com/fekuna/agritrace-service/internal/journey/dto"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/apperror"
	"github.com/fekuna/agritrace-service/pkg/lock"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const harvestNotes = "Product harvested"

type journeyUseCase struct {
	repo      journey.Repository
	authz     access.Authorizer
	locker    lock.Locker
	publisher event.Publisher
	now       func() time.Time
	logger    logger.ZapLogger
}

type Option func(*journeyUseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *journeyUseCase) { uc.now = now }
}

func NewJourneyUseCase(repo journey.Repository, authz access.Authorizer, locker lock.Locker, publisher event.Publisher, log logger.ZapLogger, opts ...Option) journey.UseCase {
	uc := &journeyUseCase{
		repo:      repo,
		authz:     authz,
		locker:    locker,
		publisher: publisher,
		now:       time.Now,
		logger:    log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// StartJourney opens the movement history of a batch with its harvest record.
func (uc *journeyUseCase) StartJourney(ctx context.Context, input *dto.StartJourneyInput) (*model.Journey, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if !uc.authz.IsAuthorized(ctx, input.Caller, access.CapRecordMovement) {
		return nil, apperror.Unauthorized("caller may not record movements").WithDetail("caller", input.Caller)
	}

	unlock, err := uc.locker.Lock(ctx, journeyLockKey(input.BatchID))
	if err != nil {
		return nil, apperror.Internal("acquire journey lock", err)
	}
	defer unlock()

	existing, err := uc.repo.Find(ctx, input.BatchID)
	if err != nil {
		return nil, apperror.Internal("load journey", err)
	}
	if existing != nil {
		return nil, apperror.DuplicateJourney(input.BatchID)
	}

	now := uc.now().UTC()
	seed := model.Movement{
		ID:          uuid.New().String(),
		BatchID:     input.BatchID,
		Index:       0,
		Stage:       model.StageHarvested,
		Handler:     input.Caller,
		HandlerName: input.FarmName,
		Location:    input.FarmLocation,
		Notes:       harvestNotes,
		Temperature: input.Temperature,
		Humidity:    input.Humidity,
		RecordedAt:  now,
	}
	j := &model.Journey{
		BatchID:      input.BatchID,
		CurrentStage: model.StageHarvested,
		StartedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, j, &seed); err != nil {
		if errors.Is(err, journey.ErrDuplicate) {
			return nil, apperror.DuplicateJourney(input.BatchID)
		}
		return nil, apperror.Internal("store journey", err)
	}
	j.Movements = []model.Movement{seed}

	uc.logger.Info("journey started",
		zap.String("batch_id", j.BatchID),
		zap.String("handler", input.Caller),
	)
	uc.publisher.Publish(ctx,
		event.FromMovement(event.JourneyStarted, &seed),
		event.FromMovement(event.StageUpdated, &seed),
	)

	return j, nil
}

// UpdateStage appends a movement at a stage ranked after the current one.
// Stages may be skipped; reaching Sold completes the journey.
func (uc *journeyUseCase) UpdateStage(ctx context.Context, input *dto.UpdateStageInput) (*model.Movement, error) {
	stage, err := model.ParseStage(input.Stage)
	if err != nil {
		return nil, apperror.InvalidArgument(err.Error()).WithDetail("stage", input.Stage)
	}
	if !uc.authz.IsAuthorized(ctx, input.Caller, access.CapRecordMovement) {
		return nil, apperror.Unauthorized("caller may not record movements").WithDetail("caller", input.Caller)
	}

	unlock, err := uc.locker.Lock(ctx, journeyLockKey(input.BatchID))
	if err != nil {
		return nil, apperror.Internal("acquire journey lock", err)
	}
	defer unlock()

	j, err := uc.load(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if j.IsComplete {
		return nil, apperror.InvalidState("journey is complete").WithDetail("batch_id", j.BatchID)
	}
	if !stage.After(j.CurrentStage) {
		return nil, apperror.InvalidTransition(j.CurrentStage.String(), stage.String()).WithDetail("batch_id", j.BatchID)
	}

	count, err := uc.repo.CountMovements(ctx, j.BatchID)
	if err != nil {
		return nil, apperror.Internal("count movements", err)
	}

	now := uc.now().UTC()
	m := &model.Movement{
		ID:          uuid.New().String(),
		BatchID:     j.BatchID,
		Index:       count,
		Stage:       stage,
		Handler:     input.Caller,
		HandlerName: input.HandlerName,
		Location:    input.Location,
		Notes:       input.Notes,
		Temperature: input.Temperature,
		Humidity:    input.Humidity,
		RecordedAt:  now,
	}
	j.CurrentStage = stage
	j.IsComplete = stage.Terminal()
	j.UpdatedAt = now

	if err := uc.repo.Append(ctx, j, m); err != nil {
		return nil, apperror.Internal("append movement", err)
	}

	uc.logger.Info("stage updated",
		zap.String("batch_id", j.BatchID),
		zap.String("stage", stage.String()),
		zap.Int("index", m.Index),
		zap.String("handler", m.Handler),
	)

	events := []event.Event{event.FromMovement(event.StageUpdated, m)}
	if j.IsComplete {
		events = append(events, event.FromMovement(event.JourneyCompleted, m))
	}
	uc.publisher.Publish(ctx, events...)

	return m, nil
}

func (uc *journeyUseCase) GetJourney(ctx context.Context, batchID string) (*model.Journey, error) {
	j, err := uc.load(ctx, batchID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.repo.ListMovements(ctx, batchID)
	if err != nil {
		return nil, apperror.Internal("list movements", err)
	}
	j.Movements = movements
	return j, nil
}

func (uc *journeyUseCase) GetCurrentStage(ctx context.Context, batchID string) (model.Stage, error) {
	j, err := uc.load(ctx, batchID)
	if err != nil {
		return "", err
	}
	return j.CurrentStage, nil
}

func (uc *journeyUseCase) GetMovementCount(ctx context.Context, batchID string) (int, error) {
	if _, err := uc.load(ctx, batchID); err != nil {
		return 0, err
	}
	n, err := uc.repo.CountMovements(ctx, batchID)
	if err != nil {
		return 0, apperror.Internal("count movements", err)
	}
	return n, nil
}

func (uc *journeyUseCase) GetMovement(ctx context.Context, batchID string, index int) (*model.Movement, error) {
	count, err := uc.GetMovementCount(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= count {
		return nil, apperror.IndexOutOfRange(index, count).WithDetail("batch_id", batchID)
	}

	m, err := uc.repo.MovementAt(ctx, batchID, index)
	if err != nil {
		return nil, apperror.Internal("load movement", err)
	}
	if m == nil {
		return nil, apperror.IndexOutOfRange(index, count).WithDetail("batch_id", batchID)
	}
	return m, nil
}

func (uc *journeyUseCase) GetAllMovements(ctx context.Context, batchID string) ([]model.Movement, error) {
	if _, err := uc.load(ctx, batchID); err != nil {
		return nil, err
	}
	movements, err := uc.repo.ListMovements(ctx, batchID)
	if err != nil {
		return nil, apperror.Internal("list movements", err)
	}
	return movements, nil
}

func (uc *journeyUseCase) IsComplete(ctx context.Context, batchID string) (bool, error) {
	j, err := uc.load(ctx, batchID)
	if err != nil {
		return false, err
	}
	return j.IsComplete, nil
}

func (uc *journeyUseCase) GetLatestConditions(ctx context.Context, batchID string) (*model.Conditions, error) {
	if _, err := uc.load(ctx, batchID); err != nil {
		return nil, err
	}
	m, err := uc.repo.LatestMovement(ctx, batchID)
	if err != nil {
		return nil, apperror.Internal("load latest movement", err)
	}
	if m == nil {
		return nil, apperror.NoData("journey has no movements").WithDetail("batch_id", batchID)
	}
	return &model.Conditions{
		Temperature: m.Temperature,
		Humidity:    m.Humidity,
		RecordedAt:  m.RecordedAt,
	}, nil
}

func (uc *journeyUseCase) load(ctx context.Context, batchID string) (*model.Journey, error) {
	j, err := uc.repo.Find(ctx, batchID)
	if err != nil {
		return nil, apperror.Internal("load journey", err)
	}
	if j == nil {
		return nil, apperror.NotFound("journey", batchID)
	}
	return j, nil
}

func journeyLockKey(batchID string) string {
	return "journey:" + batchID
}
