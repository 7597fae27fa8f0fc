package testhelpers

import "lotto/domain/entities"

// SingleTicket builds a pending single-game ticket
func SingleTicket(id int64, round int, numbers, userNumbers []int) *entities.Ticket {
	if userNumbers == nil {
		userNumbers = []int{}
	}
	return &entities.Ticket{
		ID:           id,
		Round:        round,
		Type:         entities.TicketTypeSingle,
		Numbers:      entities.SortedCopy(numbers),
		UserNumbers:  entities.SortedCopy(userNumbers),
		Cost:         entities.SingleGameCost,
		Status:       entities.TicketStatusPending,
		Date:         "2024-01-06",
		PurchaseDate: "2024-01-06",
	}
}

// SetTicket builds a pending set ticket from five games labelled A-E in order
func SetTicket(id int64, round int, games [][]int, userNumbers []int) *entities.Ticket {
	if userNumbers == nil {
		userNumbers = []int{}
	}
	gameSet := make([]entities.Game, len(games))
	for i, numbers := range games {
		gameSet[i] = entities.Game{
			Letter:      entities.GameLetters[i],
			Numbers:     entities.SortedCopy(numbers),
			UserNumbers: entities.SortedCopy(userNumbers),
		}
	}
	return &entities.Ticket{
		ID:           id,
		Round:        round,
		Type:         entities.TicketTypeSet,
		GameSet:      gameSet,
		UserNumbers:  entities.SortedCopy(userNumbers),
		Cost:         entities.GameSetCost,
		Status:       entities.TicketStatusPending,
		Date:         "2024-01-06",
		PurchaseDate: "2024-01-06",
	}
}

// Completed marks a single ticket completed with the given outcome
func Completed(t *entities.Ticket, rank entities.Rank, amount int64) *entities.Ticket {
	t.Status = entities.TicketStatusCompleted
	t.Result = rank
	t.Amount = amount
	return t
}
