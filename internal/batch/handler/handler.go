package handler

import (
	"context"

	agritracev1 "github.com/fekuna/agritrace-service/api/agritrace/v1"
	"github.com/fekuna/agritrace-service/internal/auth"
	"github.com/fekuna/agritrace-service/internal/batch"
	"github.com/fekuna/agritrace-service/internal/batch/dto"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/rpc"
)

type BatchHandler struct {
	agritracev1.UnimplementedBatchServiceServer
	uc     batch.UseCase
	logger logger.ZapLogger
}

func NewBatchHandler(uc batch.UseCase, log logger.ZapLogger) *BatchHandler {
	return &BatchHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *BatchHandler) RegisterBatch(ctx context.Context, req *agritracev1.RegisterBatchRequest) (*agritracev1.BatchResponse, error) {
	input := &dto.RegisterBatchInput{
		BatchID:      req.BatchId,
		ProductName:  req.ProductName,
		Category:     req.Category,
		Variety:      req.Variety,
		Quantity:     req.Quantity,
		HarvestDate:  req.HarvestDate,
		FarmName:     req.FarmName,
		FarmLocation: req.FarmLocation,
		Caller:       auth.GetCallerID(ctx),
	}

	b, err := h.uc.RegisterBatch(ctx, input)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.BatchResponse{Batch: mapBatchToProto(b)}, nil
}

func (h *BatchHandler) GetBatch(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.BatchResponse, error) {
	b, err := h.uc.GetBatch(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.BatchResponse{Batch: mapBatchToProto(b)}, nil
}

func (h *BatchHandler) ListBatchesByOwner(ctx context.Context, req *agritracev1.ListBatchesByOwnerRequest) (*agritracev1.ListBatchesResponse, error) {
	owner := req.Owner
	if owner == "" {
		owner = auth.GetCallerID(ctx)
	}

	ids, err := h.uc.ListBatchesByOwner(ctx, owner)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.ListBatchesResponse{
		BatchIds: ids,
		Total:    int32(len(ids)),
	}, nil
}

func (h *BatchHandler) ListBatches(ctx context.Context, req *agritracev1.ListBatchesRequest) (*agritracev1.ListBatchesResponse, error) {
	ids, total, err := h.uc.ListBatches(ctx, &dto.BatchFilters{
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.ListBatchesResponse{
		BatchIds: ids,
		Total:    int32(total),
	}, nil
}

func (h *BatchHandler) CountBatches(ctx context.Context, _ *agritracev1.Empty) (*agritracev1.CountResponse, error) {
	n, err := h.uc.TotalBatchCount(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.CountResponse{Count: int64(n)}, nil
}

func (h *BatchHandler) DeactivateBatch(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.Empty, error) {
	err := h.uc.DeactivateBatch(ctx, &dto.DeactivateBatchInput{
		BatchID: req.BatchId,
		Caller:  auth.GetCallerID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.Empty{}, nil
}

func (h *BatchHandler) IsActive(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.IsActiveResponse, error) {
	active, err := h.uc.IsActive(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.IsActiveResponse{Active: active}, nil
}

func mapBatchToProto(b *model.Batch) *agritracev1.Batch {
	return &agritracev1.Batch{
		BatchId:      b.BatchID,
		ProductName:  b.ProductName,
		Category:     b.Category,
		Variety:      b.Variety,
		Quantity:     b.Quantity,
		HarvestDate:  b.HarvestDate,
		Registrant:   b.Registrant,
		FarmName:     b.FarmName,
		FarmLocation: b.FarmLocation,
		IsActive:     b.IsActive,
		RegisteredAt: b.RegisteredAt,
	}
}
