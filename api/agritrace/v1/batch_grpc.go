package agritracev1

import (
	"context"

	"github.com/fekuna/agritrace-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const BatchServiceName = "agritrace.v1.BatchService"

type BatchServiceServer interface {
	RegisterBatch(context.Context, *RegisterBatchRequest) (*BatchResponse, error)
	GetBatch(context.Context, *BatchRef) (*BatchResponse, error)
	ListBatchesByOwner(context.Context, *ListBatchesByOwnerRequest) (*ListBatchesResponse, error)
	ListBatches(context.Context, *ListBatchesRequest) (*ListBatchesResponse, error)
	CountBatches(context.Context, *Empty) (*CountResponse, error)
	DeactivateBatch(context.Context, *BatchRef) (*Empty, error)
	IsActive(context.Context, *BatchRef) (*IsActiveResponse, error)
}

// UnimplementedBatchServiceServer can be embedded to stay forward compatible.
type UnimplementedBatchServiceServer struct{}

func (UnimplementedBatchServiceServer) RegisterBatch(context.Context, *RegisterBatchRequest) (*BatchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterBatch not implemented")
}
func (UnimplementedBatchServiceServer) GetBatch(context.Context, *BatchRef) (*BatchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBatch not implemented")
}
func (UnimplementedBatchServiceServer) ListBatchesByOwner(context.Context, *ListBatchesByOwnerRequest) (*ListBatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBatchesByOwner not implemented")
}
func (UnimplementedBatchServiceServer) ListBatches(context.Context, *ListBatchesRequest) (*ListBatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBatches not implemented")
}
func (UnimplementedBatchServiceServer) CountBatches(context.Context, *Empty) (*CountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CountBatches not implemented")
}
func (UnimplementedBatchServiceServer) DeactivateBatch(context.Context, *BatchRef) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeactivateBatch not implemented")
}
func (UnimplementedBatchServiceServer) IsActive(context.Context, *BatchRef) (*IsActiveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsActive not implemented")
}

var BatchService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BatchServiceName,
	HandlerType: (*BatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(BatchServiceName, "RegisterBatch", BatchServiceServer.RegisterBatch),
		rpc.Unary(BatchServiceName, "GetBatch", BatchServiceServer.GetBatch),
		rpc.Unary(BatchServiceName, "ListBatchesByOwner", BatchServiceServer.ListBatchesByOwner),
		rpc.Unary(BatchServiceName, "ListBatches", BatchServiceServer.ListBatches),
		rpc.Unary(BatchServiceName, "CountBatches", BatchServiceServer.CountBatches),
		rpc.Unary(BatchServiceName, "DeactivateBatch", BatchServiceServer.DeactivateBatch),
		rpc.Unary(BatchServiceName, "IsActive", BatchServiceServer.IsActive),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agritrace/v1/batch.json",
}

func RegisterBatchServiceServer(s grpc.ServiceRegistrar, srv BatchServiceServer) {
	s.RegisterService(&BatchService_ServiceDesc, srv)
}

type BatchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBatchServiceClient(cc grpc.ClientConnInterface) *BatchServiceClient {
	return &BatchServiceClient{cc: cc}
}

func (c *BatchServiceClient) RegisterBatch(ctx context.Context, in *RegisterBatchRequest, opts ...grpc.CallOption) (*BatchResponse, error) {
	return rpc.Call[BatchResponse](ctx, c.cc, BatchServiceName, "RegisterBatch", in, opts...)
}

func (c *BatchServiceClient) GetBatch(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*BatchResponse, error) {
	return rpc.Call[BatchResponse](ctx, c.cc, BatchServiceName, "GetBatch", in, opts...)
}

func (c *BatchServiceClient) ListBatchesByOwner(ctx context.Context, in *ListBatchesByOwnerRequest, opts ...grpc.CallOption) (*ListBatchesResponse, error) {
	return rpc.Call[ListBatchesResponse](ctx, c.cc, BatchServiceName, "ListBatchesByOwner", in, opts...)
}

func (c *BatchServiceClient) ListBatches(ctx context.Context, in *ListBatchesRequest, opts ...grpc.CallOption) (*ListBatchesResponse, error) {
	return rpc.Call[ListBatchesResponse](ctx, c.cc, BatchServiceName, "ListBatches", in, opts...)
}

func (c *BatchServiceClient) CountBatches(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CountResponse, error) {
	return rpc.Call[CountResponse](ctx, c.cc, BatchServiceName, "CountBatches", in, opts...)
}

func (c *BatchServiceClient) DeactivateBatch(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*Empty, error) {
	return rpc.Call[Empty](ctx, c.cc, BatchServiceName, "DeactivateBatch", in, opts...)
}

func (c *BatchServiceClient) IsActive(ctx context.Context, in *BatchRef, opts ...grpc.CallOption) (*IsActiveResponse, error) {
	return rpc.Call[IsActiveResponse](ctx, c.cc, BatchServiceName, "IsActive", in, opts...)
}
