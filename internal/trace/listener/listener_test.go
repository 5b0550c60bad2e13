package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/agritrace-service/internal/event"
	"github.com/fekuna/agritrace-service/internal/model"
	"github.com/fekuna/agritrace-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader replays msgs, then cancels the listener.
type fakeReader struct {
	msgs   []kafka.Message
	errs   []error
	cancel context.CancelFunc
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

type fakeIndexer struct {
	mu      sync.Mutex
	indices []string
	docs    map[string]event.Event
	fail    error
}

func (f *fakeIndexer) CreateIndex(_ context.Context, index, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indices = append(f.indices, index)
	return nil
}

func (f *fakeIndexer) Index(_ context.Context, _, id string, doc interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if f.docs == nil {
		f.docs = make(map[string]event.Event)
	}
	f.docs[id] = doc.(event.Event)
	return nil
}

func message(t *testing.T, e event.Event) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(e)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(e.BatchID), Value: raw}
}

func TestTraceListener_IndexesLedgerEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	started := event.New(event.JourneyStarted, "B1", model.StageHarvested, "farmer-1", "LocA", at)
	sold := event.New(event.JourneyCompleted, "B1", model.StageSold, "shop-3", "Market", at)

	reader := &fakeReader{
		msgs: []kafka.Message{
			message(t, started),
			{Value: []byte("not json")},
			message(t, event.Event{ID: "x", Type: "order.created", BatchID: "B1"}),
			message(t, sold),
		},
		errs:   []error{errors.New("broker unavailable")},
		cancel: cancel,
	}
	idx := &fakeIndexer{}
	l := NewTraceListener(reader, idx, "agritrace-events", logger.NewNop())
	l.backoff = time.Millisecond

	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}

	assert.Equal(t, []string{"agritrace-events"}, idx.indices)
	require.Len(t, idx.docs, 2)
	assert.Equal(t, model.StageHarvested, idx.docs[started.ID].Stage)
	assert.Equal(t, event.JourneyCompleted, idx.docs[sold.ID].Type)
	assert.True(t, at.Equal(idx.docs[sold.ID].OccurredAt))
}

func TestTraceListener_IndexFailure(t *testing.T) {
	idx := &fakeIndexer{fail: errors.New("cluster red")}
	l := NewTraceListener(nil, idx, "agritrace-events", logger.NewNop())

	e := event.New(event.StageUpdated, "B1", model.StageInTransit, "truck-9", "Road", time.Now())
	raw, err := json.Marshal(e)
	require.NoError(t, err)

	err = l.processMessage(context.Background(), raw)
	assert.ErrorContains(t, err, "cluster red")
}
