package agritracev1

import (
	"context"

	"github.com/fekuna/agritrace-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const JourneyServiceName = "agritrace.v1.JourneyService"

type JourneyServiceServer interface {
	StartJourney(context.Context, *StartJourneyRequest) (*JourneyResponse, error)
	UpdateStage(context.Context, *UpdateStageRequest) (*UpdateStageResponse, error)
	GetJourney(context.Context, *BatchRef) (*JourneyResponse, error)
	GetCurrentStage(context.Context, *BatchRef) (*StageResponse, error)
	GetMovementCount(context.Context, *BatchRef) (*CountResponse, error)
	GetMovement(context.Context, *GetMovementRequest) (*MovementResponse, error)
	GetAllMovements(context.Context, *BatchRef) (*MovementsResponse, error)
	IsComplete(context.Context, *BatchRef) (*IsCompleteResponse, error)
	GetLatestConditions(context.Context, *BatchRef) (*ConditionsResponse, error)
}

type UnimplementedJourneyServiceServer struct{}

func (UnimplementedJourneyServiceServer) StartJourney(context.Context, *StartJourneyRequest) (*JourneyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartJourney not implemented")
}
func (UnimplementedJourneyServiceServer) UpdateStage(context.Context, *UpdateStageRequest) (*UpdateStageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateStage not implemented")
}
func (UnimplementedJourneyServiceServer) GetJourney(context.Context, *BatchRef) (*JourneyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetJourney not implemented")
}
func (UnimplementedJourneyServiceServer) GetCurrentStage(context.Context, *BatchRef) (*StageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCurrentStage not implemented")
}
func (UnimplementedJourneyServiceServer) GetMovementCount(context.Context, *BatchRef) (*CountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMovementCount not implemented")
}
func (UnimplementedJourneyServiceServer) GetMovement(context.Context, *GetMovementRequest) (*MovementResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMovement not implemented")
}
func (UnimplementedJourneyServiceServer) GetAllMovements(context.Context, *BatchRef) (*MovementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAllMovements not implemented")
}
func (UnimplementedJourneyServiceServer) IsComplete(context.Context, *BatchRef) (*IsCompleteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsComplete not implemented")
}
func (UnimplementedJourneyServiceServer) GetLatestConditions(context.Context, *BatchRef) (*ConditionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLatestConditions not implemented")
}

var JourneyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: JourneyServiceName,
	HandlerType: (*JourneyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(JourneyServiceName, "StartJourney", JourneyServiceServer.StartJourney),
		rpc.Unary(JourneyServiceName, "UpdateStage", JourneyServiceServer.UpdateStage),
		rpc.Unary(JourneyServiceName, "GetJourney", JourneyServiceServer.GetJourney),
		rpc.Unary(JourneyServiceName, "GetCurrentStage", JourneyServiceServer.GetCurrentStage),
		rpc.Unary(JourneyServiceName, "GetMovementCount", JourneyServiceServer.GetMovementCount),
		rpc.Unary(JourneyServiceName, "GetMovement", JourneyServiceServer.GetMovement),
		rpc.Unary(JourneyServiceName, "GetAllMovements", JourneyServiceServer.GetAllMovements),
		rpc.Unary(JourneyServiceName, "IsComplete", JourneyServiceServer.IsComplete),
		rpc.Unary(JourneyServiceName, "GetLatestConditions", JourneyServiceServer.GetLatestConditions),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agritrace/v1/journey.json",
}

func RegisterJourneyServiceServer(s grpc.ServiceRegistrar, srv JourneyServiceServer) {
	s.RegisterService(&JourneyService_ServiceDesc, srv)
}

type JourneyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewJourneyServiceClient(cc grpc.ClientConnInterface) *JourneyServiceClient {
	return &JourneyServiceClient{cc: cc}
}

func (c *JourneyServiceClient) StartJourney(ctx context.Context, in *StartJourneyRequest, opts ...grpc.CallOption) (*JourneyResponse, error) {
	return rpc.Call[JourneyResponse](ctx, c.cc, JourneyServiceName, "StartJourney", in, opts...)
}

func (c *JourneyServiceClient) UpdateStage(ctx context.Context, in *UpdateStageRequest, opts ...grpc.CallOption) (*UpdateStageResponse, error) {
	return rpc.Call[UpdateStageResponse](ctx, c.cc, JourneyServiceName, "UpdateStage", in, opts...)
}

func (c *JourneyServiceClient) GetJourney(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*JourneyResponse, error) {
	return rpc.Call[JourneyResponse](ctx, c.cc, JourneyServiceName, "GetJourney", in, opts...)
}

func (c *JourneyServiceClient) GetCurrentStage(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*StageResponse, error) {
	return rpc.Call[StageResponse](ctx, c.cc, JourneyServiceName, "GetCurrentStage", in, opts...)
}

func (c *JourneyServiceClient) GetMovementCount(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*CountResponse, error) {
	return rpc.Call[CountResponse](ctx, c.cc, JourneyServiceName, "GetMovementCount", in, opts...)
}

func (c *JourneyServiceClient) GetMovement(ctx context.Context, in *GetMovementRequest, opts ...grpc.CallOption) (*MovementResponse, error) {
	return rpc.Call[MovementResponse](ctx, c.cc, JourneyServiceName, "GetMovement", in, opts...)
}

func (c *JourneyServiceClient) GetAllMovements(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*MovementsResponse, error) {
	return rpc.Call[MovementsResponse](ctx, c.cc, JourneyServiceName, "GetAllMovements", in, opts...)
}

func (c *JourneyServiceClient) IsComplete(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*IsCompleteResponse, error) {
	return rpc.Call[IsCompleteResponse](ctx, c.cc, JourneyServiceName, "IsComplete", in, opts...)
}

func (c *JourneyServiceClient) GetLatestConditions(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*ConditionsResponse, error) {
	return rpc.Call[ConditionsResponse](ctx, c.cc, JourneyServiceName, "GetLatestConditions", in, opts...)
}
