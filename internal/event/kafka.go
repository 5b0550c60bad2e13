package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// MessagePublisher is the producer side of the broker.
type MessagePublisher interface {
	Publish(ctx context.Context, key, value []byte, headers map[string]string) error
}

// KafkaRelay forwards bus events to the ledger topic behind a circuit breaker.
type KafkaRelay struct {
	producer MessagePublisher
	cb       *gobreaker.CircuitBreaker
	timeout  time.Duration
	logger   logger.ZapLogger
}

func NewKafkaRelay(producer MessagePublisher, log logger.ZapLogger) *KafkaRelay {
	settings := gobreaker.Settings{
		Name:        "kafka-relay",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return counts.ConsecutiveFailures >= 5
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &KafkaRelay{
		producer: producer,
		cb:       gobreaker.NewCircuitBreaker(settings),
		timeout:  5 * time.Second,
		logger:   log,
	}
}

func (r *KafkaRelay) Handle(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	headers := map[string]string{
		"event-id":     e.ID,
		"event-type":   string(e.Type),
		"content-type": "application/json",
	}

	// detached from the request: the caller's deadline must not drop a committed notification
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	_, err = r.cb.Execute(func() (interface{}, error) {
		return nil, r.producer.Publish(sendCtx, []byte(e.BatchID), payload, headers)
	})
	if err != nil {
		return fmt.Errorf("publish %s for %s: %w", e.Type, e.BatchID, err)
	}
	return nil
}

// State exposes the breaker state for health reporting.
func (r *KafkaRelay) State() gobreaker.State {
	return r.cb.State()
}
