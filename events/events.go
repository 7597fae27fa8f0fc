package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketSaved     EventType = "ticket_saved"
	EventTypeResultRecorded  EventType = "result_recorded"
	EventTypeHistoryCleared  EventType = "history_cleared"
	EventTypeHistoryImported EventType = "history_imported"
	EventTypeNumbersDrawn    EventType = "numbers_drawn"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketSavedEvent is emitted after a ticket has been appended to the history
type TicketSavedEvent struct {
	TicketID   int64
	Round      int
	TicketType string
	Cost       int64
}

func (e TicketSavedEvent) Type() EventType {
	return EventTypeTicketSaved
}

// ResultRecordedEvent is emitted after a pending ticket was completed
type ResultRecordedEvent struct {
	TicketID int64
	Round    int
	Amount   int64
	WinCount int
}

func (e ResultRecordedEvent) Type() EventType {
	return EventTypeResultRecorded
}

// HistoryClearedEvent is emitted after the whole history was removed
type HistoryClearedEvent struct {
	RemovedCount int
}

func (e HistoryClearedEvent) Type() EventType {
	return EventTypeHistoryCleared
}

// HistoryImportedEvent is emitted after a backup replaced the history
type HistoryImportedEvent struct {
	TicketCount int
}

func (e HistoryImportedEvent) Type() EventType {
	return EventTypeHistoryImported
}

// NumbersDrawnEvent is emitted whenever a generator produced a number set
type NumbersDrawnEvent struct {
	Mode  string // random, set or smart
	Games int
}

func (e NumbersDrawnEvent) Type() EventType {
	return EventTypeNumbersDrawn
}

// Publisher accepts events for delivery
type Publisher interface {
	Publish(event Event) error
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit dispatches an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so a slow subscriber never blocks a save
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// Publish implements Publisher by emitting on a background context
func (b *Bus) Publish(event Event) error {
	b.Emit(context.Background(), event)
	return nil
}

// TransactionalBus holds events until the store write they describe has succeeded.
// Flush forwards them to the underlying publisher.
type TransactionalBus struct {
	real    Publisher
	pending []Event
}

func NewTransactionalBus(real Publisher) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) error {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
	return nil
}

// Flush is called after a successful store write
func (b *TransactionalBus) Flush() error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events")

	defer func() { b.pending = nil }()
	if b.real == nil {
		return nil
	}
	for _, ev := range b.pending {
		if err := b.real.Publish(ev); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops pending events after a failed write
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
