package services

import (
	"lotto/domain/entities"
	"lotto/domain/testhelpers"
)

// threePickHistory is the history of three single tickets that all share the picks 1, 2 and 3
func threePickHistory() []*entities.Ticket {
	return []*entities.Ticket{
		testhelpers.SingleTicket(1, 1100, []int{1, 2, 3, 4, 5, 6}, []int{1, 2, 3, 4, 5, 6}),
		testhelpers.SingleTicket(2, 1101, []int{1, 2, 3, 7, 8, 9}, []int{1, 2, 3, 7, 8, 9}),
		testhelpers.SingleTicket(3, 1102, []int{1, 2, 3, 10, 11, 12}, []int{1, 2, 3, 10, 11, 12}),
	}
}

func sampleGameSet() [][]int {
	return [][]int{
		{1, 2, 3, 4, 5, 6},
		{1, 10, 20, 30, 40, 45},
		{1, 7, 14, 21, 28, 35},
		{1, 11, 12, 13, 33, 44},
		{1, 9, 18, 27, 36, 41},
	}
}
