// Package state holds the selection state of an interactive session and the
// transition function that advances it.
package state

import (
	"lotto/domain/entities"
)

// State is the session state shown by a presentation layer. Values are never
// mutated in place: Reduce returns a new State.
type State struct {
	UserNumbers    []int
	CurrentNumbers []int
	CurrentGameSet []entities.Game
	History        []*entities.Ticket
}

// HasCurrentGame reports whether a generated single game or set is waiting to be saved
func (s State) HasCurrentGame() bool {
	return len(s.CurrentNumbers) > 0 || len(s.CurrentGameSet) > 0
}

// Action is a state transition request
type Action interface {
	isAction()
}

type (
	// ToggleNumber adds a number to the selection, or removes it when already selected
	ToggleNumber struct{ Number int }

	// AddNumber adds a number to the selection
	AddNumber struct{ Number int }

	// RemoveNumber drops a number from the selection
	RemoveNumber struct{ Number int }

	// SetUserNumbers replaces the whole selection
	SetUserNumbers struct{ Numbers []int }

	// ClearUserNumbers empties the selection
	ClearUserNumbers struct{}

	// SetCurrentNumbers holds a generated single game
	SetCurrentNumbers struct{ Numbers []int }

	// SetCurrentGameSet holds a generated set
	SetCurrentGameSet struct{ Games []entities.Game }

	// SetHistory replaces the loaded history
	SetHistory struct{ Tickets []*entities.Ticket }

	// AddTicket appends a saved ticket
	AddTicket struct{ Ticket *entities.Ticket }

	// UpdateTicket replaces the ticket with the same ID
	UpdateTicket struct{ Ticket *entities.Ticket }

	// ClearCurrentGame resets the selection and any generated game
	ClearCurrentGame struct{}
)

func (ToggleNumber) isAction()      {}
func (AddNumber) isAction()         {}
func (RemoveNumber) isAction()      {}
func (SetUserNumbers) isAction()    {}
func (ClearUserNumbers) isAction()  {}
func (SetCurrentNumbers) isAction() {}
func (SetCurrentGameSet) isAction() {}
func (SetHistory) isAction()        {}
func (AddTicket) isAction()         {}
func (UpdateTicket) isAction()      {}
func (ClearCurrentGame) isAction()  {}

// Reduce applies an action and returns the next state. A rejected action
// returns the unchanged state together with a ValidationError.
func Reduce(s State, action Action) (State, error) {
	switch a := action.(type) {
	case ToggleNumber:
		if entities.Contains(s.UserNumbers, a.Number) {
			return Reduce(s, RemoveNumber(a))
		}
		return Reduce(s, AddNumber(a))

	case AddNumber:
		if entities.Contains(s.UserNumbers, a.Number) {
			return s, nil
		}
		next := append(cloneInts(s.UserNumbers), a.Number)
		if err := entities.ValidateSelection(next); err != nil {
			return s, err
		}
		s.UserNumbers = entities.SortedCopy(next)
		return s, nil

	case RemoveNumber:
		next := make([]int, 0, len(s.UserNumbers))
		for _, n := range s.UserNumbers {
			if n != a.Number {
				next = append(next, n)
			}
		}
		s.UserNumbers = next
		return s, nil

	case SetUserNumbers:
		if err := entities.ValidateSelection(a.Numbers); err != nil {
			return s, err
		}
		s.UserNumbers = entities.SortedCopy(a.Numbers)
		return s, nil

	case ClearUserNumbers:
		s.UserNumbers = []int{}
		return s, nil

	case SetCurrentNumbers:
		if err := entities.ValidateDraw(a.Numbers); err != nil {
			return s, err
		}
		s.CurrentNumbers = entities.SortedCopy(a.Numbers)
		s.CurrentGameSet = nil
		return s, nil

	case SetCurrentGameSet:
		if len(a.Games) != entities.GameSetSize {
			return s, entities.NewValidationError("a game set needs %d games, got %d", entities.GameSetSize, len(a.Games))
		}
		s.CurrentGameSet = append([]entities.Game(nil), a.Games...)
		s.CurrentNumbers = nil
		return s, nil

	case SetHistory:
		s.History = append([]*entities.Ticket(nil), a.Tickets...)
		return s, nil

	case AddTicket:
		if a.Ticket == nil {
			return s, entities.NewValidationError("no ticket to add")
		}
		history := make([]*entities.Ticket, 0, len(s.History)+1)
		history = append(history, s.History...)
		s.History = append(history, a.Ticket)
		return s, nil

	case UpdateTicket:
		if a.Ticket == nil {
			return s, entities.NewValidationError("no ticket to update")
		}
		history := make([]*entities.Ticket, len(s.History))
		found := false
		for i, t := range s.History {
			if t != nil && t.ID == a.Ticket.ID {
				history[i] = a.Ticket
				found = true
			} else {
				history[i] = t
			}
		}
		if !found {
			return s, entities.ErrTicketNotFound
		}
		s.History = history
		return s, nil

	case ClearCurrentGame:
		s.UserNumbers = []int{}
		s.CurrentNumbers = nil
		s.CurrentGameSet = nil
		return s, nil
	}
	return s, entities.NewValidationError("unknown action %T", action)
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
