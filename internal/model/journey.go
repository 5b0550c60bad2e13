package model

import "time"

// Journey is the movement history header of one batch.
type Journey struct {
	BatchID      string     `db:"batch_id" json:"batch_id"`
	CurrentStage Stage      `db:"current_stage" json:"current_stage"`
	IsComplete   bool       `db:"is_complete" json:"is_complete"`
	StartedAt    time.Time  `db:"started_at" json:"started_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	Movements    []Movement `db:"-" json:"movements,omitempty"`
}

// Movement is one immutable stage record. Index is its position in the journey.
type Movement struct {
	ID          string    `db:"id" json:"id"`
	BatchID     string    `db:"batch_id" json:"batch_id"`
	Index       int       `db:"idx" json:"index"`
	Stage       Stage     `db:"stage" json:"stage"`
	Handler     string    `db:"handler" json:"handler"`
	HandlerName string    `db:"handler_name" json:"handler_name"`
	Location    string    `db:"location" json:"location"`
	Notes       string    `db:"notes" json:"notes"`
	Temperature int16     `db:"temperature" json:"temperature"`
	Humidity    uint16    `db:"humidity" json:"humidity"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}

// Conditions are the environmental readings of the latest movement.
type Conditions struct {
	Temperature int16     `json:"temperature"`
	Humidity    uint16    `json:"humidity"`
	RecordedAt  time.Time `json:"recorded_at"`
}
