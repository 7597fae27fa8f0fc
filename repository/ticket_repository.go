package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const ticketColumns = `id, round, type, numbers, game_set, user_numbers, cost, status,
	result, amount, results, total_amount, date, purchase_date`

// TicketRepository implements ticket data access on PostgreSQL
type TicketRepository struct {
	db *database.DB
	q  Queryable
}

// NewTicketRepository creates a new PostgreSQL ticket repository
func NewTicketRepository(db *database.DB) interfaces.TicketRepository {
	return &TicketRepository{db: db, q: db}
}

// GetAll returns every ticket in insertion order
func (r *TicketRepository) GetAll(ctx context.Context) ([]*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY seq ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*entities.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

// GetByID returns a ticket or nil when it does not exist
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Append inserts a ticket at the end of the history
func (r *TicketRepository) Append(ctx context.Context, ticket *entities.Ticket) error {
	return insertTicket(ctx, r.q, ticket)
}

// Update stores the result fields of a ticket; everything else is immutable once saved
func (r *TicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	results, err := marshalJSONB(ticket.Results, len(ticket.Results) == 0)
	if err != nil {
		return err
	}

	query := `
		UPDATE tickets
		SET status = $2, result = $3, amount = $4, results = $5, total_amount = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		ticket.ID,
		ticket.Status,
		nullableRank(ticket.Result),
		ticket.Amount,
		results,
		ticket.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", ticket.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTicketNotFound
	}
	return nil
}

// ReplaceAll swaps the whole history inside one transaction
func (r *TicketRepository) ReplaceAll(ctx context.Context, tickets []*entities.Ticket) error {
	return r.db.InTx(ctx, database.ImportTxOptions, func(tx pgx.Tx) error {
		return replaceTickets(ctx, tx, tickets)
	})
}

// DeleteAll removes every ticket
func (r *TicketRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM tickets`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tickets: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func replaceTickets(ctx context.Context, q Queryable, tickets []*entities.Ticket) error {
	if _, err := q.Exec(ctx, `DELETE FROM tickets`); err != nil {
		return fmt.Errorf("failed to delete tickets: %w", err)
	}
	for _, ticket := range tickets {
		if err := insertTicket(ctx, q, ticket); err != nil {
			return err
		}
	}
	return nil
}

func insertTicket(ctx context.Context, q Queryable, ticket *entities.Ticket) error {
	gameSet, err := marshalJSONB(ticket.GameSet, len(ticket.GameSet) == 0)
	if err != nil {
		return err
	}
	results, err := marshalJSONB(ticket.Results, len(ticket.Results) == 0)
	if err != nil {
		return err
	}
	userNumbers := ticket.UserNumbers
	if userNumbers == nil {
		userNumbers = []int{}
	}

	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = q.Exec(ctx, query,
		ticket.ID,
		ticket.Round,
		ticket.Type,
		ticket.Numbers,
		gameSet,
		userNumbers,
		ticket.EffectiveCost(),
		ticket.Status,
		nullableRank(ticket.Result),
		ticket.Amount,
		results,
		ticket.TotalAmount,
		ticket.Date,
		ticket.PurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ticket %d: %w", ticket.ID, err)
	}
	return nil
}

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var (
		ticket  entities.Ticket
		gameSet []byte
		results []byte
		result  *string
	)

	err := row.Scan(
		&ticket.ID,
		&ticket.Round,
		&ticket.Type,
		&ticket.Numbers,
		&gameSet,
		&ticket.UserNumbers,
		&ticket.Cost,
		&ticket.Status,
		&result,
		&ticket.Amount,
		&results,
		&ticket.TotalAmount,
		&ticket.Date,
		&ticket.PurchaseDate,
	)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket: %w", err)
	}

	if result != nil {
		ticket.Result = entities.Rank(*result)
	}
	if len(gameSet) > 0 {
		if err := json.Unmarshal(gameSet, &ticket.GameSet); err != nil {
			return nil, fmt.Errorf("failed to decode game set of ticket %d: %w", ticket.ID, err)
		}
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &ticket.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results of ticket %d: %w", ticket.ID, err)
		}
	}
	return &ticket, nil
}

// marshalJSONB encodes v for a JSONB column, or SQL NULL when empty
func marshalJSONB(v any, empty bool) ([]byte, error) {
	if empty {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb column: %w", err)
	}
	return data, nil
}

func nullableRank(r entities.Rank) *string {
	if r == "" {
		return nil
	}
	s := string(r)
	return &s
}
