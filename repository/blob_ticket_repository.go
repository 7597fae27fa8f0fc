package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// blobStore persists the whole history as one JSON document, the way the
// browser app kept it under a single storage key
type blobStore interface {
	// read returns the stored document, or nil when nothing was stored yet
	read(ctx context.Context) ([]byte, error)

	// modify atomically replaces the document with the result of fn
	modify(ctx context.Context, fn func(current []byte) ([]byte, error)) error

	// name identifies the backend in logs
	name() string
}

// BlobTicketRepository implements TicketRepository over a single JSON document
type BlobTicketRepository struct {
	store blobStore
}

func newBlobTicketRepository(store blobStore) interfaces.TicketRepository {
	return &BlobTicketRepository{store: store}
}

func (r *BlobTicketRepository) GetAll(ctx context.Context) ([]*entities.Ticket, error) {
	data, err := r.store.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history from %s: %w", r.store.name(), err)
	}
	return decodeHistory(data)
}

func (r *BlobTicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	tickets, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *BlobTicketRepository) Append(ctx context.Context, ticket *entities.Ticket) error {
	return r.update(ctx, func(tickets []*entities.Ticket) ([]*entities.Ticket, error) {
		for _, t := range tickets {
			if t.ID == ticket.ID {
				return nil, fmt.Errorf("ticket %d already exists", ticket.ID)
			}
		}
		return append(tickets, ticket.Clone()), nil
	})
}

func (r *BlobTicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	return r.update(ctx, func(tickets []*entities.Ticket) ([]*entities.Ticket, error) {
		for i, t := range tickets {
			if t.ID == ticket.ID {
				tickets[i] = ticket.Clone()
				return tickets, nil
			}
		}
		return nil, entities.ErrTicketNotFound
	})
}

func (r *BlobTicketRepository) ReplaceAll(ctx context.Context, tickets []*entities.Ticket) error {
	return r.update(ctx, func([]*entities.Ticket) ([]*entities.Ticket, error) {
		replaced := make([]*entities.Ticket, 0, len(tickets))
		for _, t := range tickets {
			replaced = append(replaced, t.Clone())
		}
		return replaced, nil
	})
}

func (r *BlobTicketRepository) DeleteAll(ctx context.Context) (int, error) {
	removed := 0
	err := r.update(ctx, func(tickets []*entities.Ticket) ([]*entities.Ticket, error) {
		removed = len(tickets)
		return []*entities.Ticket{}, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *BlobTicketRepository) update(ctx context.Context, fn func([]*entities.Ticket) ([]*entities.Ticket, error)) error {
	err := r.store.modify(ctx, func(current []byte) ([]byte, error) {
		tickets, err := decodeHistory(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(tickets)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode history: %w", err)
		}
		return data, nil
	})
	if err != nil {
		log.WithFields(log.Fields{
			"store": r.store.name(),
			"error": err,
		}).Debug("History write failed")
		return err
	}
	return nil
}

// decodeHistory parses a stored document and upgrades legacy records
func decodeHistory(data []byte) ([]*entities.Ticket, error) {
	tickets := make([]*entities.Ticket, 0)
	if len(data) == 0 {
		return tickets, nil
	}
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	kept := tickets[:0]
	for _, t := range tickets {
		if t == nil {
			continue
		}
		t.Normalize()
		kept = append(kept, t)
	}
	return kept, nil
}
