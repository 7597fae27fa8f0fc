package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/events"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// historyService implements the ticket history on top of a TicketRepository
type historyService struct {
	// mu serializes read-modify-write sequences against the store
	mu             sync.Mutex
	ticketRepo     interfaces.TicketRepository
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
	singleCost     int64
}

// HistoryOption customizes a history service
type HistoryOption func(*historyService)

// WithClock overrides the clock used for ticket IDs and dates
func WithClock(now func() time.Time) HistoryOption {
	return func(s *historyService) {
		s.now = now
	}
}

// WithSingleGameCost overrides the price of one game; sets cost five times as much
func WithSingleGameCost(cost int64) HistoryOption {
	return func(s *historyService) {
		if cost > 0 {
			s.singleCost = cost
		}
	}
}

// NewHistoryService creates a new history service
func NewHistoryService(
	ticketRepo interfaces.TicketRepository,
	eventPublisher interfaces.EventPublisher,
	opts ...HistoryOption,
) interfaces.HistoryService {
	s := &historyService{
		ticketRepo:     ticketRepo,
		eventPublisher: eventPublisher,
		now:            time.Now,
		singleCost:     entities.SingleGameCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveSingle validates and appends a single-game ticket
func (s *historyService) SaveSingle(ctx context.Context, round int, numbers, userNumbers []int) (*entities.Ticket, error) {
	ticket := &entities.Ticket{
		Round:       round,
		Type:        entities.TicketTypeSingle,
		Numbers:     entities.SortedCopy(numbers),
		UserNumbers: entities.SortedCopy(userNumbers),
		Cost:        s.singleCost,
		Status:      entities.TicketStatusPending,
	}
	return s.save(ctx, ticket)
}

// SaveGameSet validates and appends a 5-game set ticket
func (s *historyService) SaveGameSet(ctx context.Context, round int, games []entities.Game, userNumbers []int) (*entities.Ticket, error) {
	gameSet := make([]entities.Game, len(games))
	for i, g := range games {
		gameSet[i] = entities.Game{
			Letter:      g.Letter,
			Numbers:     entities.SortedCopy(g.Numbers),
			UserNumbers: entities.SortedCopy(g.UserNumbers),
		}
	}
	ticket := &entities.Ticket{
		Round:       round,
		Type:        entities.TicketTypeSet,
		GameSet:     gameSet,
		UserNumbers: entities.SortedCopy(userNumbers),
		Cost:        s.singleCost * entities.GameSetSize,
		Status:      entities.TicketStatusPending,
	}
	return s.save(ctx, ticket)
}

func (s *historyService) save(ctx context.Context, ticket *entities.Ticket) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ticket.Date = now.Format(dateLayout)
	ticket.PurchaseDate = ticket.Date

	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	history, err := s.ticketRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	ticket.ID = nextTicketID(history, now)

	tx := events.NewTransactionalBus(s.eventPublisher)
	_ = tx.Publish(events.TicketSavedEvent{
		TicketID:   ticket.ID,
		Round:      ticket.Round,
		TicketType: string(ticket.Type),
		Cost:       ticket.Cost,
	})

	if err := s.ticketRepo.Append(ctx, ticket); err != nil {
		tx.Discard()
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}
	s.flush(tx)

	log.WithFields(log.Fields{
		"ticketID": ticket.ID,
		"round":    ticket.Round,
		"type":     ticket.Type,
		"cost":     ticket.Cost,
	}).Info("Ticket saved")

	return ticket, nil
}

// RecordResult completes a pending single-game ticket
func (s *historyService) RecordResult(ctx context.Context, ticketID int64, outcome entities.Outcome) (*entities.Ticket, error) {
	return s.complete(ctx, ticketID, func(t *entities.Ticket) error {
		return t.Complete(outcome)
	})
}

// RecordGameSetResults completes a pending set ticket; every letter needs an outcome
func (s *historyService) RecordGameSetResults(ctx context.Context, ticketID int64, results map[string]entities.Outcome) (*entities.Ticket, error) {
	return s.complete(ctx, ticketID, func(t *entities.Ticket) error {
		return t.CompleteSet(results)
	})
}

func (s *historyService) complete(ctx context.Context, ticketID int64, apply func(*entities.Ticket) error) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, entities.ErrTicketNotFound
	}

	if err := apply(ticket); err != nil {
		return nil, err
	}

	tx := events.NewTransactionalBus(s.eventPublisher)
	_ = tx.Publish(events.ResultRecordedEvent{
		TicketID: ticket.ID,
		Round:    ticket.Round,
		Amount:   ticket.Winnings(),
		WinCount: ticket.WinCount(),
	})

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		tx.Discard()
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	s.flush(tx)

	log.WithFields(log.Fields{
		"ticketID": ticket.ID,
		"amount":   ticket.Winnings(),
		"wins":     ticket.WinCount(),
	}).Info("Result recorded")

	return ticket, nil
}

func (s *historyService) GetTicket(ctx context.Context, ticketID int64) (*entities.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, entities.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *historyService) List(ctx context.Context) ([]*entities.Ticket, error) {
	history, err := s.ticketRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return history, nil
}

// Clear removes every ticket
func (s *historyService) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.ticketRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	tx := events.NewTransactionalBus(s.eventPublisher)
	_ = tx.Publish(events.HistoryClearedEvent{RemovedCount: removed})
	s.flush(tx)

	log.WithField("removed", removed).Info("History cleared")
	return removed, nil
}

func (s *historyService) Export(ctx context.Context) (*entities.Backup, error) {
	history, err := s.ticketRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entities.NewBackup(history, s.now()), nil
}

// Import replaces the history with the tickets of a validated backup
func (s *historyService) Import(ctx context.Context, backup *entities.Backup) (int, error) {
	if err := backup.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ticketRepo.ReplaceAll(ctx, backup.GameHistory); err != nil {
		return 0, fmt.Errorf("failed to import history: %w", err)
	}

	tx := events.NewTransactionalBus(s.eventPublisher)
	_ = tx.Publish(events.HistoryImportedEvent{TicketCount: len(backup.GameHistory)})
	s.flush(tx)

	log.WithFields(log.Fields{
		"tickets":    len(backup.GameHistory),
		"exportDate": backup.ExportDate,
	}).Info("History imported")

	return len(backup.GameHistory), nil
}

func (s *historyService) flush(tx *events.TransactionalBus) {
	if err := tx.Flush(); err != nil {
		log.WithError(err).Warn("Failed to publish history events")
	}
}

// nextTicketID derives an ID from the clock that stays above every stored ID
func nextTicketID(history []*entities.Ticket, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range history {
		if t != nil && t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
