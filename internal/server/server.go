// Package server assembles the gRPC server exposing the ledger services.
package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	agritracev1 "github.com/fekuna/agritrace-service/api/agritrace/v1"
	"github.com/fekuna/agritrace-service/internal/auth"
	"github.com/fekuna/agritrace-service/internal/batch"
	batchH "github.com/fekuna/agritrace-service/internal/batch/handler"
	"github.com/fekuna/agritrace-service/internal/journey"
	journeyH "github.com/fekuna/agritrace-service/internal/journey/handler"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/middleware"
)

// MutatingMethods need a caller identity.
var MutatingMethods = []string{
	"/" + agritracev1.BatchServiceName + "/RegisterBatch",
	"/" + agritracev1.BatchServiceName + "/DeactivateBatch",
	"/" + agritracev1.JourneyServiceName + "/StartJourney",
	"/" + agritracev1.JourneyServiceName + "/UpdateStage",
}

type Deps struct {
	Batch   batch.UseCase
	Journey journey.UseCase
	Logger  logger.ZapLogger
	// ObserveRequest receives the method and status code of every call. Optional.
	ObserveRequest func(method, code string)
}

func NewGRPCServer(deps Deps, opts ...grpc.ServerOption) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.RecoveryInterceptor(deps.Logger),
		middleware.ContextInterceptor(auth.CallerHeader, auth.WithCaller),
		middleware.LoggingInterceptor(deps.Logger),
	}
	if deps.ObserveRequest != nil {
		interceptors = append(interceptors, middleware.MetricsInterceptor(deps.ObserveRequest))
	}
	interceptors = append(interceptors, middleware.IdentityInterceptor(auth.GetCallerID, MutatingMethods...))

	opts = append(opts, grpc.ChainUnaryInterceptor(interceptors...))
	grpcServer := grpc.NewServer(opts...)

	agritracev1.RegisterBatchServiceServer(grpcServer, batchH.NewBatchHandler(deps.Batch, deps.Logger))
	agritracev1.RegisterJourneyServiceServer(grpcServer, journeyH.NewJourneyHandler(deps.Journey, deps.Logger))
	reflection.Register(grpcServer)

	return grpcServer
}
