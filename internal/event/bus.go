package event

import (
	"context"
	"sync"

	"github.com/fekuna/agritrace-service/pkg/logger"
	"go.uber.org/zap"
)

// Publisher is what the ledger use cases publish committed notifications to.
type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

// Handler receives published events. Errors are logged by the bus and never
// reach the publisher: the mutation behind the event is already committed.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Bus delivers events synchronously, in publish order, to every subscriber.
type Bus struct {
	mu       sync.RWMutex
	handlers []namedHandler
	logger   logger.ZapLogger
}

type namedHandler struct {
	name string
	h    Handler
}

func NewBus(log logger.ZapLogger) *Bus {
	return &Bus{logger: log}
}

func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, namedHandler{name: name, h: h})
}

func (b *Bus) Publish(ctx context.Context, events ...Event) {
	b.mu.RLock()
	handlers := make([]namedHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, e := range events {
		for _, nh := range handlers {
			if err := nh.h.Handle(ctx, e); err != nil {
				b.logger.Error("event handler failed",
					zap.String("handler", nh.name),
					zap.String("event_type", string(e.Type)),
					zap.String("batch_id", e.BatchID),
					zap.Error(err),
				)
			}
		}
	}
}

// Recorder keeps every event it receives. Handy for tests and local tooling.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Handle(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Publish lets a Recorder stand in for a Bus.
func (r *Recorder) Publish(ctx context.Context, events ...Event) {
	for _, e := range events {
		_ = r.Handle(ctx, e)
	}
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Types() []Type {
	events := r.Events()
	out := make([]Type, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
