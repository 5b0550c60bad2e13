package usecase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/fekuna/agritrace-service/internal/access"
	"github.com/fekuna/agritrace-service/internal/batch"
	"github.com/fekuna/agritrace-service/internal/batch/dto"
	"github.com/fekuna/agritrace-service/internal/event"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/apperror"
	"github.com/fekuna/agritrace-service/pkg/cache"
	"github.com/fekuna/agritrace-service/pkg/lock"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/validation"
	"go.uber.org/zap"
)

const (
	batchCacheTTL = 10 * time.Minute

	// MaxPageSize bounds ListBatches pages.
	MaxPageSize = 1000
)

// Cache is the subset of the redis client the batch read cache needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Cache = (*cache.RedisClient)(nil)

type batchUseCase struct {
	repo      batch.Repository
	authz     access.Authorizer
	locker    lock.Locker
	publisher event.Publisher
	cache     Cache
	now       func() time.Time
	logger    logger.ZapLogger
}

type Option func(*batchUseCase)

// WithCache enables the read-through batch cache.
func WithCache(c Cache) Option {
	return func(uc *batchUseCase) { uc.cache = c }
}

func WithClock(now func() time.Time) Option {
	return func(uc *batchUseCase) { uc.now = now }
}

func NewBatchUseCase(repo batch.Repository, authz access.Authorizer, locker lock.Locker, publisher event.Publisher, log logger.ZapLogger, opts ...Option) batch.UseCase {
	uc := &batchUseCase{
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

func (uc *batchUseCase) RegisterBatch(ctx context.Context, input *dto.RegisterBatchInput) (*model.Batch, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if !uc.authz.IsAuthorized(ctx, input.Caller, access.CapRegisterBatch) {
		return nil, apperror.Unauthorized("caller may not register batches").WithDetail("caller", input.Caller)
	}

	unlock, err := uc.locker.Lock(ctx, batchLockKey(input.BatchID))
	if err != nil {
		return nil, apperror.Internal("acquire batch lock", err)
	}
	defer unlock()

	existing, err := uc.repo.FindByID(ctx, input.BatchID)
	if err != nil {
		return nil, apperror.Internal("load batch", err)
	}
	if existing != nil {
		return nil, apperror.DuplicateBatch(input.BatchID)
	}

	now := uc.now().UTC()
	b := &model.Batch{
		BatchID:      input.BatchID,
		ProductName:  input.ProductName,
		Category:     input.Category,
		Variety:      input.Variety,
		Quantity:     input.Quantity,
		HarvestDate:  input.HarvestDate.UTC(),
		Registrant:   input.Caller,
		FarmName:     input.FarmName,
		FarmLocation: input.FarmLocation,
		IsActive:     true,
		RegisteredAt: now,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		if errors.Is(err, batch.ErrDuplicate) {
			return nil, apperror.DuplicateBatch(input.BatchID)
		}
		return nil, apperror.Internal("store batch", err)
	}

	uc.logger.Info("batch registered",
		zap.String("batch_id", b.BatchID),
		zap.String("registrant", b.Registrant),
		zap.Int64("quantity", b.Quantity),
	)
	uc.publisher.Publish(ctx, event.New(event.BatchRegistered, b.BatchID, "", b.Registrant, b.FarmLocation, now))

	return b, nil
}

func (uc *batchUseCase) GetBatch(ctx context.Context, batchID string) (*model.Batch, error) {
	if uc.cache == nil {
		return uc.load(ctx, batchID)
	}

	var cached model.Batch
	if err := uc.cache.GetJSON(ctx, batchCacheKey(batchID), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		uc.logger.Warn("batch cache read failed", zap.String("batch_id", batchID), zap.Error(err))
	}

	// the fill runs under the batch lock so it cannot overwrite a newer invalidation
	unlock, err := uc.locker.Lock(ctx, batchLockKey(batchID))
	if err != nil {
		return nil, apperror.Internal("acquire batch lock", err)
	}
	defer unlock()

	b, err := uc.load(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SetJSON(ctx, batchCacheKey(batchID), b, batchCacheTTL); err != nil {
		uc.logger.Warn("batch cache write failed", zap.String("batch_id", batchID), zap.Error(err))
	}
	return b, nil
}

func (uc *batchUseCase) ListBatchesByOwner(ctx context.Context, owner string) ([]string, error) {
	ids, err := uc.repo.ListIDsByOwner(ctx, owner)
	if err != nil {
		return nil, apperror.Internal("list owner batches", err)
	}
	return ids, nil
}

func (uc *batchUseCase) ListBatches(ctx context.Context, filters *dto.BatchFilters) ([]string, int, error) {
	if filters == nil {
		filters = &dto.BatchFilters{}
	}
	if filters.PageSize < 0 || filters.PageSize > MaxPageSize {
		return nil, 0, apperror.InvalidArgument("page size out of range").
			WithDetail("max_page_size", strconv.Itoa(MaxPageSize))
	}
	if filters.Page < 0 {
		return nil, 0, apperror.InvalidArgument("page must not be negative")
	}
	if filters.PageSize > 0 && filters.Page > 1 && filters.Page-1 > math.MaxInt32/filters.PageSize {
		return nil, 0, apperror.InvalidArgument("page out of range")
	}

	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperror.Internal("count batches", err)
	}
	ids, err := uc.repo.ListIDs(ctx, filters.Offset(), filters.PageSize)
	if err != nil {
		return nil, 0, apperror.Internal("list batches", err)
	}
	return ids, total, nil
}

func (uc *batchUseCase) TotalBatchCount(ctx context.Context) (int, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return 0, apperror.Internal("count batches", err)
	}
	return n, nil
}

// DeactivateBatch flips IsActive to false. Deactivating an inactive batch
// succeeds and changes nothing.
func (uc *batchUseCase) DeactivateBatch(ctx context.Context, input *dto.DeactivateBatchInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	unlock, err := uc.locker.Lock(ctx, batchLockKey(input.BatchID))
	if err != nil {
		return apperror.Internal("acquire batch lock", err)
	}
	defer unlock()

	b, err := uc.load(ctx, input.BatchID)
	if err != nil {
		return err
	}
	owner, err := uc.authz.OwnerOf(ctx, b.BatchID)
	if err != nil {
		return apperror.Internal("resolve batch owner", err)
	}
	if owner == "" || owner != input.Caller {
		return apperror.Unauthorized("only the registrant can deactivate a batch").
			WithDetail("batch_id", input.BatchID).
			WithDetail("caller", input.Caller)
	}
	if !b.IsActive {
		return nil
	}

	if err := uc.repo.SetActive(ctx, b.BatchID, false); err != nil {
		return apperror.Internal("deactivate batch", err)
	}
	uc.invalidate(ctx, b.BatchID)

	uc.logger.Info("batch deactivated", zap.String("batch_id", b.BatchID), zap.String("caller", input.Caller))
	uc.publisher.Publish(ctx, event.New(event.BatchDeactivated, b.BatchID, "", input.Caller, "", uc.now().UTC()))
	return nil
}

func (uc *batchUseCase) IsActive(ctx context.Context, batchID string) (bool, error) {
	b, err := uc.load(ctx, batchID)
	if err != nil {
		return false, err
	}
	return b.IsActive, nil
}

// OwnerOf lets the access directory resolve batch ownership. It reads the
// store directly and takes no lock, so it is safe to call from DeactivateBatch.
func (uc *batchUseCase) OwnerOf(ctx context.Context, batchID string) (string, error) {
	b, err := uc.load(ctx, batchID)
	if err != nil {
		return "", err
	}
	return b.Registrant, nil
}

func (uc *batchUseCase) load(ctx context.Context, batchID string) (*model.Batch, error) {
	b, err := uc.repo.FindByID(ctx, batchID)
	if err != nil {
		return nil, apperror.Internal("load batch", err)
	}
	if b == nil {
		return nil, apperror.NotFound("batch", batchID)
	}
	return b, nil
}

func (uc *batchUseCase) invalidate(ctx context.Context, batchID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, batchCacheKey(batchID)); err != nil {
		uc.logger.Warn("batch cache invalidation failed", zap.String("batch_id", batchID), zap.Error(err))
	}
}

func batchLockKey(batchID string) string {
	return "batch:" + batchID
}

func batchCacheKey(batchID string) string {
	return "agritrace:batch:" + batchID
}
