package dto

import "time"

type RegisterBatchInput struct {
	BatchID      string `validate:"required"`
	ProductName  string `validate:"required"`
	Category     string
	Variety      string
	Quantity     int64 `validate:"gt=0"`
	HarvestDate  time.Time
	FarmName     string
	FarmLocation string
	Caller       string
}

type DeactivateBatchInput struct {
	BatchID string `validate:"required"`
	Caller  string
}
