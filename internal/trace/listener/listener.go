package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/agritrace-service/internal/event"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"event_id":   { "type": "keyword" },
			"event_type": { "type": "keyword" },
			"batch_id":   { "type": "keyword" },
			"stage":      { "type": "keyword" },
			"handler":    { "type": "keyword" },
			"location":   { "type": "text" },
			"timestamp":  { "type": "date" }
		}
	}
}`

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Indexer interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
}

// TraceListener indexes ledger notifications from the broker into the search cluster.
type TraceListener struct {
	consumer MessageReader
	indexer  Indexer
	index    string
	backoff  time.Duration
	logger   logger.ZapLogger
}

func NewTraceListener(consumer MessageReader, indexer Indexer, index string, logger logger.ZapLogger) *TraceListener {
	return &TraceListener{
		consumer: consumer,
		indexer:  indexer,
		index:    index,
		backoff:  time.Second,
		logger:   logger,
	}
}

func (l *TraceListener) Start(ctx context.Context) {
	l.logger.Info("Starting trace listener", zap.String("index", l.index))
	if err := l.indexer.CreateIndex(ctx, l.index, indexMapping); err != nil {
		l.logger.Warn("Failed to create trace index", zap.String("index", l.index), zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping trace listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			if err := l.processMessage(ctx, msg.Value); err != nil {
				l.logger.Error("Failed to index ledger event",
					zap.String("key", string(msg.Key)),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		}
	}
}

func (l *TraceListener) processMessage(ctx context.Context, value []byte) error {
	var e event.Event
	if err := json.Unmarshal(value, &e); err != nil {
		l.logger.Warn("Skipping undecodable message", zap.Error(err))
		return nil
	}
	if e.ID == "" || e.BatchID == "" || !known(e.Type) {
		l.logger.Warn("Skipping unknown ledger event", zap.String("event_type", string(e.Type)))
		return nil
	}

	if err := l.indexer.Index(ctx, l.index, e.ID, e); err != nil {
		return fmt.Errorf("index %s: %w", e.ID, err)
	}
	l.logger.Debug("Indexed ledger event",
		zap.String("event_id", e.ID),
		zap.String("event_type", string(e.Type)),
		zap.String("batch_id", e.BatchID),
	)
	return nil
}

func known(t event.Type) bool {
	switch t {
	case event.BatchRegistered, event.BatchDeactivated,
		event.JourneyStarted, event.StageUpdated, event.JourneyCompleted:
		return true
	}
	return false
}
