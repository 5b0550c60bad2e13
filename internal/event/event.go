package event

import (
	"time"

	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/google/uuid"
)

type Type string

const (
	BatchRegistered  Type = "batch.registered"
	BatchDeactivated Type = "batch.deactivated"
	JourneyStarted   Type = "journey.started"
	StageUpdated     Type = "journey.stage_updated"
	JourneyCompleted Type = "journey.completed"
)

// Event is a ledger notification keyed by batch id.
type Event struct {
	ID         string      `json:"event_id"`
	Type       Type        `json:"event_type"`
	BatchID    string      `json:"batch_id"`
	Stage      model.Stage `json:"stage,omitempty"`
	Handler    string      `json:"handler"`
	Location   string      `json:"location,omitempty"`
	OccurredAt time.Time   `json:"timestamp"`
}

func New(t Type, batchID string, stage model.Stage, handler, location string, at time.Time) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       t,
		BatchID:    batchID,
		Stage:      stage,
		Handler:    handler,
		Location:   location,
		OccurredAt: at,
	}
}

// FromMovement builds the notification of type t for a committed movement.
func FromMovement(t Type, m *model.Movement) Event {
	return New(t, m.BatchID, m.Stage, m.Handler, m.Location, m.RecordedAt)
}
