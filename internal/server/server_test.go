package server

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	agritracev1 "github.com/fekuna/agritrace-service/api/agritrace/v1"
	"github.com/fekuna/agritrace-service/internal/access"
	"github.com/fekuna/agritrace-service/internal/batch"
	batchRepo "github.com/fekuna/agritrace-service/internal/batch/repository"
	batchUC "github.com/fekuna/agritrace-service/internal/batch/usecase"
	"github.com/fekuna/agritrace-service/internal/event"
	journeyRepo "github.com/fekuna/agritrace-service/internal/journey/repository"
	journeyUC "github.com/fekuna/agritrace-service/internal/journey/usecase"
	"github.com/fekuna/agritrace-service/pkg/apperror"
	"github.com/fekuna/agritrace-service/pkg/lock"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type env struct {
	batches  *agritracev1.BatchServiceClient
	journeys *agritracev1.JourneyServiceClient
	events   *event.Recorder

	mu       sync.Mutex
	observed map[string]int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := logger.NewNop()
	rec := &event.Recorder{}
	locker := lock.NewKeyedMutex()

	var batches batch.UseCase
	dir := access.NewDirectory(access.OwnerLookupFunc(func(ctx context.Context, batchID string) (string, error) {
		return batches.OwnerOf(ctx, batchID)
	}))
	dir.Bind("farmer-1", access.RoleFarmer)
	dir.Bind("truck-9", access.RoleTransporter)
	dir.Bind("shop-3", access.RoleRetailer)
	batches = batchUC.NewBatchUseCase(batchRepo.NewMemoryRepository(), dir, locker, rec, log)

	e := &env{events: rec, observed: map[string]int{}}
	srv := NewGRPCServer(Deps{
		Batch:   batches,
		Journey: journeyUC.NewJourneyUseCase(journeyRepo.NewMemoryRepository(), dir, locker, rec, log),
		Logger:  log,
		ObserveRequest: func(method, code string) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.observed[method+" "+code]++
		},
	})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	e.batches = agritracev1.NewBatchServiceClient(conn)
	e.journeys = agritracev1.NewJourneyServiceClient(conn)
	return e
}

func as(caller string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "x-user-id", caller)
}

func TestBatchService(t *testing.T) {
	e := newEnv(t)
	harvest := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	res, err := e.batches.RegisterBatch(as("farmer-1"), &agritracev1.RegisterBatchRequest{
		BatchId:      "B1",
		ProductName:  "Tomato",
		Category:     "Vegetable",
		Variety:      "Roma",
		Quantity:     100,
		HarvestDate:  harvest,
		FarmName:     "FarmA",
		FarmLocation: "LocA",
	})
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", res.Batch.Registrant)
	assert.True(t, res.Batch.IsActive)
	assert.True(t, harvest.Equal(res.Batch.HarvestDate))

	_, err = e.batches.RegisterBatch(as("farmer-1"), &agritracev1.RegisterBatchRequest{BatchId: "B1", ProductName: "Tomato", Quantity: 1})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	assert.Equal(t, apperror.KindDuplicateBatch, rpc.KindOf(err))

	_, err = e.batches.RegisterBatch(as("farmer-1"), &agritracev1.RegisterBatchRequest{BatchId: "B2", ProductName: "Tomato"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = e.batches.RegisterBatch(as("truck-9"), &agritracev1.RegisterBatchRequest{BatchId: "B2", ProductName: "Tomato", Quantity: 1})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, apperror.KindUnauthorized, rpc.KindOf(err))

	got, err := e.batches.GetBatch(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.Equal(t, "Tomato", got.Batch.ProductName)

	_, err = e.batches.GetBatch(as(""), &agritracev1.BatchRef{BatchId: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	mine, err := e.batches.ListBatchesByOwner(as("farmer-1"), &agritracev1.ListBatchesByOwnerRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, mine.BatchIds)

	count, err := e.batches.CountBatches(as(""), &agritracev1.Empty{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)

	_, err = e.batches.DeactivateBatch(as("farmer-1"), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)

	active, err := e.batches.IsActive(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.False(t, active.Active)
}

func TestMutationsRequireIdentity(t *testing.T) {
	e := newEnv(t)

	_, err := e.batches.RegisterBatch(as(""), &agritracev1.RegisterBatchRequest{BatchId: "B1", ProductName: "Tomato", Quantity: 1})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = e.journeys.UpdateStage(context.Background(), &agritracev1.UpdateStageRequest{BatchId: "B1", Stage: "Sold"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	for _, blank := range []string{" ", "   "} {
		_, err = e.batches.RegisterBatch(as(blank), &agritracev1.RegisterBatchRequest{BatchId: "B1", ProductName: "Tomato", Quantity: 1})
		assert.Equal(t, codes.Unauthenticated, status.Code(err), "caller %q", blank)

		_, err = e.journeys.StartJourney(as(blank), &agritracev1.StartJourneyRequest{BatchId: "B1"})
		assert.Equal(t, codes.Unauthenticated, status.Code(err), "caller %q", blank)
	}

	count, err := e.batches.CountBatches(as(""), &agritracev1.Empty{})
	require.NoError(t, err)
	assert.Zero(t, count.Count)
	assert.Empty(t, e.events.Events())
}

func TestCallerIdentityIsTrimmed(t *testing.T) {
	e := newEnv(t)

	res, err := e.batches.RegisterBatch(as("  farmer-1 "), &agritracev1.RegisterBatchRequest{BatchId: "B1", ProductName: "Tomato", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", res.Batch.Registrant)

	_, err = e.batches.DeactivateBatch(as("farmer-1"), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
}

func TestJourneyService(t *testing.T) {
	e := newEnv(t)

	started, err := e.journeys.StartJourney(as("farmer-1"), &agritracev1.StartJourneyRequest{
		BatchId:      "B1",
		FarmName:     "FarmA",
		FarmLocation: "LocA",
		Temperature:  22,
		Humidity:     60,
	})
	require.NoError(t, err)
	assert.Equal(t, "Harvested", started.Journey.CurrentStage)
	require.Len(t, started.Journey.Movements, 1)
	assert.Equal(t, "Product harvested", started.Journey.Movements[0].Notes)

	up, err := e.journeys.UpdateStage(as("truck-9"), &agritracev1.UpdateStageRequest{
		BatchId:     "B1",
		Stage:       "AtWarehouse",
		HandlerName: "Cold Store",
		Location:    "Depot 4",
		Temperature: -18,
		Humidity:    40,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), up.Movement.Index)
	assert.False(t, up.IsComplete)

	_, err = e.journeys.UpdateStage(as("truck-9"), &agritracev1.UpdateStageRequest{BatchId: "B1", Stage: "InTransit"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, apperror.KindInvalidTransition, rpc.KindOf(err))

	_, err = e.journeys.UpdateStage(as("truck-9"), &agritracev1.UpdateStageRequest{BatchId: "B1", Stage: "Spoiled"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = e.journeys.UpdateStage(as("truck-9"), &agritracev1.UpdateStageRequest{BatchId: "B1", Stage: "Sold", Temperature: 40000})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	up, err = e.journeys.UpdateStage(as("shop-3"), &agritracev1.UpdateStageRequest{BatchId: "B1", Stage: "Sold"})
	require.NoError(t, err)
	assert.True(t, up.IsComplete)

	_, err = e.journeys.UpdateStage(as("shop-3"), &agritracev1.UpdateStageRequest{BatchId: "B1", Stage: "Sold"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, apperror.KindInvalidState, rpc.KindOf(err))

	stage, err := e.journeys.GetCurrentStage(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.Equal(t, "Sold", stage.Stage)

	n, err := e.journeys.GetMovementCount(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Count)

	m, err := e.journeys.GetMovement(as(""), &agritracev1.GetMovementRequest{BatchId: "B1", Index: 1})
	require.NoError(t, err)
	assert.Equal(t, "AtWarehouse", m.Movement.Stage)
	assert.Equal(t, int32(-18), m.Movement.Temperature)

	_, err = e.journeys.GetMovement(as(""), &agritracev1.GetMovementRequest{BatchId: "B1", Index: 3})
	assert.Equal(t, codes.OutOfRange, status.Code(err))

	all, err := e.journeys.GetAllMovements(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.Len(t, all.Movements, 3)

	done, err := e.journeys.IsComplete(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.True(t, done.Complete)

	cond, err := e.journeys.GetLatestConditions(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.Equal(t, int32(0), cond.Temperature)

	full, err := e.journeys.GetJourney(as(""), &agritracev1.BatchRef{BatchId: "B1"})
	require.NoError(t, err)
	assert.True(t, full.Journey.IsComplete)
	assert.Len(t, full.Journey.Movements, 3)

	_, err = e.journeys.GetJourney(as(""), &agritracev1.BatchRef{BatchId: "ghost"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	assert.Equal(t, []event.Type{
		event.JourneyStarted,
		event.StageUpdated,
		event.StageUpdated,
		event.StageUpdated,
		event.JourneyCompleted,
	}, e.events.Types())

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, 2, e.observed["/agritrace.v1.JourneyService/UpdateStage OK"])
	assert.Equal(t, 2, e.observed["/agritrace.v1.JourneyService/UpdateStage FailedPrecondition"])
}
