package entities

import (
	"fmt"
	"time"
)

// Backup is the export format of the ticket history
type Backup struct {
	GameHistory []*Ticket `json:"gameHistory"`
	ExportDate  string    `json:"exportDate"`
}

// NewBackup snapshots tickets with the given export time
func NewBackup(tickets []*Ticket, exportedAt time.Time) *Backup {
	history := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		history = append(history, t.Clone())
	}
	return &Backup{
		GameHistory: history,
		ExportDate:  exportedAt.UTC().Format(time.RFC3339),
	}
}

// Validate normalizes legacy records and checks every ticket of the backup
func (b *Backup) Validate() error {
	if b == nil || b.GameHistory == nil {
		return ErrInvalidBackup
	}
	seen := make(map[int64]bool, len(b.GameHistory))
	for i, t := range b.GameHistory {
		if t == nil {
			return fmt.Errorf("entry %d: %w", i, ErrInvalidBackup)
		}
		t.Normalize()
		if err := t.Validate(); err != nil {
			return fmt.Errorf("entry %d (id %d): %w", i, t.ID, err)
		}
		if seen[t.ID] {
			return NewValidationError("duplicate ticket id %d", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
