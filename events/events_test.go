package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(event Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func TestBus_EmitDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	received := make(chan Event, 2)
	bus.Subscribe(EventTypeTicketSaved, func(_ context.Context, e Event) {
		received <- e
	})
	bus.Subscribe(EventTypeHistoryCleared, func(_ context.Context, e Event) {
		t.Errorf("unexpected delivery of %s", e.Type())
	})

	require.NoError(t, bus.Publish(TicketSavedEvent{TicketID: 7, Round: 1100}))

	select {
	case e := <-received:
		saved, ok := e.(TicketSavedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(7), saved.TicketID)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
}

func TestBus_HandlerPanicIsRecovered(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	done := make(chan struct{})
	bus.Subscribe(EventTypeHistoryImported, func(context.Context, Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeHistoryImported, func(context.Context, Event) {
		close(done)
	})

	bus.Emit(context.Background(), HistoryImportedEvent{TicketCount: 3})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler was not called")
	}
}

func TestTransactionalBus(t *testing.T) {
	t.Parallel()

	t.Run("flush forwards pending events in order", func(t *testing.T) {
		t.Parallel()

		real := &recordingPublisher{}
		tx := NewTransactionalBus(real)
		require.NoError(t, tx.Publish(TicketSavedEvent{TicketID: 1}))
		require.NoError(t, tx.Publish(ResultRecordedEvent{TicketID: 1}))
		assert.Equal(t, 2, tx.Pending())
		assert.Empty(t, real.events)

		require.NoError(t, tx.Flush())
		require.Len(t, real.events, 2)
		assert.Equal(t, EventTypeTicketSaved, real.events[0].Type())
		assert.Equal(t, EventTypeResultRecorded, real.events[1].Type())
		assert.Equal(t, 0, tx.Pending())
	})

	t.Run("discard drops events", func(t *testing.T) {
		t.Parallel()

		real := &recordingPublisher{}
		tx := NewTransactionalBus(real)
		require.NoError(t, tx.Publish(HistoryClearedEvent{RemovedCount: 4}))
		tx.Discard()
		require.NoError(t, tx.Flush())
		assert.Empty(t, real.events)
	})

	t.Run("flush reports publisher errors", func(t *testing.T) {
		t.Parallel()

		real := &recordingPublisher{err: errors.New("closed")}
		tx := NewTransactionalBus(real)
		require.NoError(t, tx.Publish(HistoryClearedEvent{}))
		assert.Error(t, tx.Flush())
		assert.Equal(t, 0, tx.Pending())
	})

	t.Run("nil publisher is a no-op", func(t *testing.T) {
		t.Parallel()

		tx := NewTransactionalBus(nil)
		require.NoError(t, tx.Publish(HistoryClearedEvent{}))
		assert.NoError(t, tx.Flush())
	})
}
