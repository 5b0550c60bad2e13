// Package agritracev1 declares the agritrace.v1 gRPC services and their messages.
// Messages travel with the JSON codec registered by pkg/rpc.
package agritracev1

import "time"

type Batch struct {
	BatchId      string    `json:"batch_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	Variety      string    `json:"variety"`
	Quantity     int64     `json:"quantity"`
	HarvestDate  time.Time `json:"harvest_date"`
	Registrant   string    `json:"registrant"`
	FarmName     string    `json:"farm_name"`
	FarmLocation string    `json:"farm_location"`
	IsActive     bool      `json:"is_active"`
	RegisteredAt time.Time `json:"registered_at"`
}

type Movement struct {
	Id          string    `json:"id"`
	BatchId     string    `json:"batch_id"`
	Index       int32     `json:"index"`
	Stage       string    `json:"stage"`
	Handler     string    `json:"handler"`
	HandlerName string    `json:"handler_name"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
	Temperature int32     `json:"temperature"`
	Humidity    uint32    `json:"humidity"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type Journey struct {
	BatchId      string      `json:"batch_id"`
	CurrentStage string      `json:"current_stage"`
	IsComplete   bool        `json:"is_complete"`
	StartedAt    time.Time   `json:"started_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Movements    []*Movement `json:"movements"`
}

// BatchRef addresses a single batch or journey.
type BatchRef struct {
	BatchId string `json:"batch_id"`
}

type Empty struct{}

type RegisterBatchRequest struct {
	BatchId      string    `json:"batch_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	Variety      string    `json:"variety"`
	Quantity     int64     `json:"quantity"`
	HarvestDate  time.Time `json:"harvest_date"`
	FarmName     string    `json:"farm_name"`
	FarmLocation string    `json:"farm_location"`
}

type BatchResponse struct {
	Batch *Batch `json:"batch"`
}

type ListBatchesByOwnerRequest struct {
	Owner string `json:"owner"`
}

type ListBatchesRequest struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type ListBatchesResponse struct {
	BatchIds []string `json:"batch_ids"`
	Total    int32    `json:"total"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type IsActiveResponse struct {
	Active bool `json:"active"`
}

type StartJourneyRequest struct {
	BatchId      string `json:"batch_id"`
	FarmName     string `json:"farm_name"`
	FarmLocation string `json:"farm_location"`
	Temperature  int32  `json:"temperature"`
	Humidity     uint32 `json:"humidity"`
}

type JourneyResponse struct {
	Journey *Journey `json:"journey"`
}

type UpdateStageRequest struct {
	BatchId     string `json:"batch_id"`
	Stage       string `json:"stage"`
	HandlerName string `json:"handler_name"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
	Temperature int32  `json:"temperature"`
	Humidity    uint32 `json:"humidity"`
}

type UpdateStageResponse struct {
	Movement   *Movement `json:"movement"`
	IsComplete bool      `json:"is_complete"`
}

type StageResponse struct {
	Stage string `json:"stage"`
}

type GetMovementRequest struct {
	BatchId string `json:"batch_id"`
	Index   int32  `json:"index"`
}

type MovementResponse struct {
	Movement *Movement `json:"movement"`
}

type MovementsResponse struct {
	Movements []*Movement `json:"movements"`
}

type IsCompleteResponse struct {
	Complete bool `json:"complete"`
}

type ConditionsResponse struct {
	Temperature int32     `json:"temperature"`
	Humidity    uint32    `json:"humidity"`
	RecordedAt  time.Time `json:"recorded_at"`
}
