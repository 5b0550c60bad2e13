package handler

import (
	"context"
	"math"

	agritracev1 "github.com/fekuna/agritrace-service/api/agritrace/v1"
	"github.com/fekuna/agritrace-service/internal/auth"
	"github.com/fekuna/agritrace-service/internal/journey"
	"github.com/fekuna/agritrace-service/internal/journey/dto"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/apperror"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/fekuna/agritrace-service/pkg/rpc"
)

type JourneyHandler struct {
	agritracev1.UnimplementedJourneyServiceServer
	uc     journey.UseCase
	logger logger.ZapLogger
}

func NewJourneyHandler(uc journey.UseCase, log logger.ZapLogger) *JourneyHandler {
	return &JourneyHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *JourneyHandler) StartJourney(ctx context.Context, req *agritracev1.StartJourneyRequest) (*agritracev1.JourneyResponse, error) {
	temp, hum, err := readings(req.Temperature, req.Humidity)
	if err != nil {
		return nil, rpc.Status(err)
	}

	j, err := h.uc.StartJourney(ctx, &dto.StartJourneyInput{
		BatchID:      req.BatchId,
		FarmName:     req.FarmName,
		FarmLocation: req.FarmLocation,
		Temperature:  temp,
		Humidity:     hum,
		Caller:       auth.GetCallerID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.JourneyResponse{Journey: mapJourneyToProto(j)}, nil
}

func (h *JourneyHandler) UpdateStage(ctx context.Context, req *agritracev1.UpdateStageRequest) (*agritracev1.UpdateStageResponse, error) {
	temp, hum, err := readings(req.Temperature, req.Humidity)
	if err != nil {
		return nil, rpc.Status(err)
	}

	m, err := h.uc.UpdateStage(ctx, &dto.UpdateStageInput{
		BatchID:     req.BatchId,
		Stage:       req.Stage,
		HandlerName: req.HandlerName,
		Location:    req.Location,
		Notes:       req.Notes,
		Temperature: temp,
		Humidity:    hum,
		Caller:      auth.GetCallerID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.UpdateStageResponse{
		Movement:   mapMovementToProto(m),
		IsComplete: m.Stage.Terminal(),
	}, nil
}

func (h *JourneyHandler) GetJourney(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.JourneyResponse, error) {
	j, err := h.uc.GetJourney(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.JourneyResponse{Journey: mapJourneyToProto(j)}, nil
}

func (h *JourneyHandler) GetCurrentStage(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.StageResponse, error) {
	stage, err := h.uc.GetCurrentStage(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.StageResponse{Stage: stage.String()}, nil
}

func (h *JourneyHandler) GetMovementCount(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.CountResponse, error) {
	n, err := h.uc.GetMovementCount(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.CountResponse{Count: int64(n)}, nil
}

func (h *JourneyHandler) GetMovement(ctx context.Context, req *agritracev1.GetMovementRequest) (*agritracev1.MovementResponse, error) {
	m, err := h.uc.GetMovement(ctx, req.BatchId, int(req.Index))
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.MovementResponse{Movement: mapMovementToProto(m)}, nil
}

func (h *JourneyHandler) GetAllMovements(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.MovementsResponse, error) {
	movements, err := h.uc.GetAllMovements(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.MovementsResponse{Movements: mapMovementsToProto(movements)}, nil
}

func (h *JourneyHandler) IsComplete(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.IsCompleteResponse, error) {
	done, err := h.uc.IsComplete(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.IsCompleteResponse{Complete: done}, nil
}

func (h *JourneyHandler) GetLatestConditions(ctx context.Context, req *agritracev1.BatchRef) (*agritracev1.ConditionsResponse, error) {
	c, err := h.uc.GetLatestConditions(ctx, req.BatchId)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &agritracev1.ConditionsResponse{
		Temperature: int32(c.Temperature),
		Humidity:    uint32(c.Humidity),
		RecordedAt:  c.RecordedAt,
	}, nil
}

// readings narrows the wire readings to the stored widths.
func readings(temperature int32, humidity uint32) (int16, uint16, error) {
	if temperature < math.MinInt16 || temperature > math.MaxInt16 {
		return 0, 0, apperror.InvalidArgument("temperature out of range")
	}
	if humidity > math.MaxUint16 {
		return 0, 0, apperror.InvalidArgument("humidity out of range")
	}
	return int16(temperature), uint16(humidity), nil
}

func mapJourneyToProto(j *model.Journey) *agritracev1.Journey {
	return &agritracev1.Journey{
		BatchId:      j.BatchID,
		CurrentStage: j.CurrentStage.String(),
		IsComplete:   j.IsComplete,
		StartedAt:    j.StartedAt,
		UpdatedAt:    j.UpdatedAt,
		Movements:    mapMovementsToProto(j.Movements),
	}
}

func mapMovementsToProto(movements []model.Movement) []*agritracev1.Movement {
	out := make([]*agritracev1.Movement, len(movements))
	for i := range movements {
		out[i] = mapMovementToProto(&movements[i])
	}
	return out
}

func mapMovementToProto(m *model.Movement) *agritracev1.Movement {
	return &agritracev1.Movement{
		Id:          m.ID,
		BatchId:     m.BatchID,
		Index:       int32(m.Index),
		Stage:       m.Stage.String(),
		Handler:     m.Handler,
		HandlerName: m.HandlerName,
		Location:    m.Location,
		Notes:       m.Notes,
		Temperature: int32(m.Temperature),
		Humidity:    uint32(m.Humidity),
		RecordedAt:  m.RecordedAt,
	}
}
