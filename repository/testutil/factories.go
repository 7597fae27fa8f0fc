package testutil

import (
	"lotto/domain/entities"
)

// CreateTestTicket builds a pending single ticket with the given ID
func CreateTestTicket(id int64, numbers ...int) *entities.Ticket {
	if len(numbers) == 0 {
		numbers = []int{3, 11, 19, 27, 35, 43}
	}
	return &entities.Ticket{
		ID:           id,
		Round:        1100,
		Type:         entities.TicketTypeSingle,
		Numbers:      numbers,
		UserNumbers:  []int{numbers[0]},
		Cost:         entities.SingleGameCost,
		Status:       entities.TicketStatusPending,
		Date:         "2024-01-06",
		PurchaseDate: "2024-01-06",
	}
}

// CreateTestGameSet builds a pending set ticket anchored on number 7
func CreateTestGameSet(id int64) *entities.Ticket {
	games := make([]entities.Game, 0, entities.GameSetSize)
	for i, letter := range entities.GameLetters {
		games = append(games, entities.Game{
			Letter:      letter,
			Numbers:     []int{7, 12 + i, 22 + i, 32 + i, 38, 45},
			UserNumbers: []int{7},
		})
	}
	return &entities.Ticket{
		ID:           id,
		Round:        1101,
		Type:         entities.TicketTypeSet,
		GameSet:      games,
		UserNumbers:  []int{7},
		Cost:         entities.GameSetCost,
		Status:       entities.TicketStatusPending,
		Date:         "2024-01-13",
		PurchaseDate: "2024-01-13",
	}
}
