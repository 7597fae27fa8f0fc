package entities

import (
	"fmt"
	"slices"
	"strings"
)

// TicketType distinguishes single games from 5-game sets
type TicketType string

const (
	TicketTypeSingle TicketType = "single"
	TicketTypeSet    TicketType = "set"
)

// TicketStatus represents the lifecycle state of a ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusCompleted TicketStatus = "completed"
)

const (
	// SingleGameCost is the price of one game
	SingleGameCost int64 = 1000

	// GameSetSize is the number of sub-games in a set
	GameSetSize = 5

	// GameSetCost is the price of a 5-game set
	GameSetCost = SingleGameCost * GameSetSize
)

// GameLetters labels the sub-games of a set in order
var GameLetters = []string{"A", "B", "C", "D", "E"}

// Game is one lettered sub-game of a set
type Game struct {
	Letter      string `json:"game"`
	Numbers     []int  `json:"numbers"`
	UserNumbers []int  `json:"userNumbers"`
}

// Outcome is the result entered for one game
type Outcome struct {
	Rank   Rank  `json:"result"`
	Amount int64 `json:"amount"`
}

// IsWin reports whether the outcome is a prize
func (o Outcome) IsWin() bool {
	return o.Rank.IsWin()
}

// Ticket is one persisted lottery entry, either a single game or a 5-game set.
// The JSON shape matches the browser backups so old exports can be imported.
type Ticket struct {
	ID           int64              `json:"id" db:"id"`
	Round        int                `json:"round" db:"round"`
	Type         TicketType         `json:"type,omitempty" db:"type"`
	Numbers      []int              `json:"numbers,omitempty" db:"numbers"`
	GameSet      []Game             `json:"gameSet,omitempty" db:"game_set"`
	UserNumbers  []int              `json:"userNumbers" db:"user_numbers"`
	Cost         int64              `json:"cost" db:"cost"`
	Status       TicketStatus       `json:"status" db:"status"`
	Result       Rank               `json:"result,omitempty" db:"result"`
	Amount       int64              `json:"amount,omitempty" db:"amount"`
	Results      map[string]Outcome `json:"results,omitempty" db:"results"`
	TotalAmount  int64              `json:"totalAmount,omitempty" db:"total_amount"`
	Date         string             `json:"date" db:"date"`
	PurchaseDate string             `json:"purchaseDate" db:"purchase_date"`
}

// IsGameSet returns true for 5-game set tickets
func (t *Ticket) IsGameSet() bool {
	return t.Type == TicketTypeSet && len(t.GameSet) > 0
}

// IsPending returns true until a result has been entered
func (t *Ticket) IsPending() bool {
	return t.Status != TicketStatusCompleted
}

// Draws returns every 6-number game held by the ticket
func (t *Ticket) Draws() [][]int {
	if t.IsGameSet() {
		draws := make([][]int, 0, len(t.GameSet))
		for _, g := range t.GameSet {
			draws = append(draws, g.Numbers)
		}
		return draws
	}
	if len(t.Numbers) == 0 {
		return nil
	}
	return [][]int{t.Numbers}
}

// EffectiveCost returns the recorded cost, falling back to the list price of the ticket type
func (t *Ticket) EffectiveCost() int64 {
	if t.Cost > 0 {
		return t.Cost
	}
	if t.Type == TicketTypeSet {
		return GameSetCost
	}
	return SingleGameCost
}

// Winnings returns the total prize amount recorded on the ticket
func (t *Ticket) Winnings() int64 {
	if t.IsGameSet() {
		var total int64
		for _, o := range t.Results {
			total += o.Amount
		}
		return total
	}
	return t.Amount
}

// WinCount returns the number of winning games on the ticket
func (t *Ticket) WinCount() int {
	if t.IsGameSet() {
		count := 0
		for _, o := range t.Results {
			if o.IsWin() {
				count++
			}
		}
		return count
	}
	if t.Result.IsWin() {
		return 1
	}
	return 0
}

// Complete records the outcome of a single-game ticket
func (t *Ticket) Complete(outcome Outcome) error {
	if t.IsGameSet() {
		return NewValidationError("ticket %d is a game set, results are required per game", t.ID)
	}
	if !t.IsPending() {
		return ErrTicketAlreadyCompleted
	}
	if err := outcome.validate(); err != nil {
		return err
	}
	t.Result = outcome.Rank
	t.Amount = outcome.Amount
	t.Status = TicketStatusCompleted
	return nil
}

// CompleteSet records the outcome of every sub-game of a set ticket
func (t *Ticket) CompleteSet(results map[string]Outcome) error {
	if !t.IsGameSet() {
		return NewValidationError("ticket %d is a single game", t.ID)
	}
	if !t.IsPending() {
		return ErrTicketAlreadyCompleted
	}
	recorded := make(map[string]Outcome, len(t.GameSet))
	var total int64
	for _, g := range t.GameSet {
		outcome, ok := results[g.Letter]
		if !ok {
			return NewValidationError("missing result for game %s", g.Letter)
		}
		if err := outcome.validate(); err != nil {
			return err
		}
		recorded[g.Letter] = outcome
		total += outcome.Amount
	}
	for letter := range results {
		if _, ok := recorded[letter]; !ok {
			return NewValidationError("ticket %d has no game %s", t.ID, letter)
		}
	}
	t.Results = recorded
	t.TotalAmount = total
	t.Status = TicketStatusCompleted
	return nil
}

// Validate checks the ticket invariants
func (t *Ticket) Validate() error {
	if t.Round <= 0 {
		return NewValidationError("round must be positive, got %d", t.Round)
	}
	if err := ValidateSelection(t.UserNumbers); err != nil {
		return err
	}

	switch t.Type {
	case TicketTypeSet:
		if len(t.GameSet) != GameSetSize {
			return NewValidationError("a game set needs %d games, got %d", GameSetSize, len(t.GameSet))
		}
		if len(t.UserNumbers) == 0 {
			return NewValidationError("a game set needs at least one selected number")
		}
		for i, g := range t.GameSet {
			if g.Letter != GameLetters[i] {
				return NewValidationError("game %d must be labelled %s, got %q", i+1, GameLetters[i], g.Letter)
			}
			if err := ValidateDraw(g.Numbers); err != nil {
				return fmt.Errorf("game %s: %w", g.Letter, err)
			}
			if !slices.Equal(SortedCopy(g.UserNumbers), SortedCopy(t.UserNumbers)) {
				return NewValidationError("game %s selected numbers %v differ from the ticket's %v", g.Letter, g.UserNumbers, t.UserNumbers)
			}
			if !ContainsAll(g.Numbers, g.UserNumbers) {
				return NewValidationError("game %s does not contain its selected numbers", g.Letter)
			}
		}
	case TicketTypeSingle, "":
		if err := ValidateDraw(t.Numbers); err != nil {
			return err
		}
		if !ContainsAll(t.Numbers, t.UserNumbers) {
			return NewValidationError("ticket numbers do not contain the selected numbers")
		}
	default:
		return NewValidationError("unknown ticket type %q", t.Type)
	}

	switch t.Status {
	case TicketStatusPending:
		if t.Result != "" || len(t.Results) > 0 {
			return NewValidationError("pending ticket %d already has a result", t.ID)
		}
	case TicketStatusCompleted:
		if !t.IsGameSet() {
			if t.Result == "" {
				return NewValidationError("completed ticket %d has no result", t.ID)
			}
			if err := (Outcome{Rank: t.Result, Amount: t.Amount}).validate(); err != nil {
				return fmt.Errorf("ticket %d: %w", t.ID, err)
			}
			break
		}
		if len(t.Results) != GameSetSize {
			return NewValidationError("completed set %d needs %d results, got %d", t.ID, GameSetSize, len(t.Results))
		}
		// five results keyed by the five game letters leave no room for other keys
		for _, g := range t.GameSet {
			outcome, ok := t.Results[g.Letter]
			if !ok {
				return NewValidationError("completed set %d has no result for game %s", t.ID, g.Letter)
			}
			if err := outcome.validate(); err != nil {
				return fmt.Errorf("game %s: %w", g.Letter, err)
			}
		}
	default:
		return NewValidationError("unknown status %q", t.Status)
	}
	return nil
}

// Normalize fills defaults of legacy records: missing type, cost and canonical rank labels
func (t *Ticket) Normalize() {
	if t.Type == "" {
		if len(t.GameSet) > 0 {
			t.Type = TicketTypeSet
		} else {
			t.Type = TicketTypeSingle
		}
	}
	if t.Cost == 0 {
		t.Cost = t.EffectiveCost()
	}
	if t.Status == "" {
		t.Status = TicketStatusPending
	}
	if t.Result != "" {
		if r, err := ParseRank(string(t.Result)); err == nil {
			t.Result = r
		}
	}
	for letter, o := range t.Results {
		if r, err := ParseRank(string(o.Rank)); err == nil {
			o.Rank = r
			t.Results[letter] = o
		}
	}
	if t.UserNumbers == nil {
		t.UserNumbers = []int{}
	}
	for i := range t.GameSet {
		if t.GameSet[i].UserNumbers == nil {
			t.GameSet[i].UserNumbers = cloneInts(t.UserNumbers)
		}
	}
}

// Clone returns a deep copy of the ticket
func (t *Ticket) Clone() *Ticket {
	c := *t
	c.Numbers = cloneInts(t.Numbers)
	c.UserNumbers = cloneInts(t.UserNumbers)
	if t.GameSet != nil {
		c.GameSet = make([]Game, len(t.GameSet))
		for i, g := range t.GameSet {
			c.GameSet[i] = Game{Letter: g.Letter, Numbers: cloneInts(g.Numbers), UserNumbers: cloneInts(g.UserNumbers)}
		}
	}
	if t.Results != nil {
		c.Results = make(map[string]Outcome, len(t.Results))
		for k, v := range t.Results {
			c.Results[k] = v
		}
	}
	return &c
}

// FormatNumbers renders numbers as "1, 2, 3"
func FormatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	copy(out, in)
	return out
}
