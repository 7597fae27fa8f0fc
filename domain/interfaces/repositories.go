package interfaces

import (
	"context"

	"lotto/domain/entities"
	"lotto/events"
)

// TicketRepository defines the persistence contract for the ticket history.
// Implementations keep tickets in insertion order: recency weighting depends on it.
type TicketRepository interface {
	// GetAll returns every ticket, oldest first
	GetAll(ctx context.Context) ([]*entities.Ticket, error)

	// GetByID returns a ticket or nil when no ticket has that ID
	GetByID(ctx context.Context, id int64) (*entities.Ticket, error)

	// Append stores a new ticket at the end of the history
	Append(ctx context.Context, ticket *entities.Ticket) error

	// Update overwrites an existing ticket in place
	Update(ctx context.Context, ticket *entities.Ticket) error

	// ReplaceAll swaps the whole history, used by backup import
	ReplaceAll(ctx context.Context, tickets []*entities.Ticket) error

	// DeleteAll removes every ticket and returns how many were removed
	DeleteAll(ctx context.Context) (int, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
