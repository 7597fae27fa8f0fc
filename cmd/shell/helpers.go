package shell

import (
	"fmt"
	"strconv"
	"strings"

	"lotto/domain/entities"
	"lotto/domain/utils"
)

// parseNumbers accepts space or comma separated numbers
func parseNumbers(args []string) ([]int, error) {
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("not a number: %s", field)
			}
			numbers = append(numbers, n)
		}
	}
	return numbers, nil
}

// parseOutcome reads a rank label and an optional amount
func parseOutcome(rank, amount string) (entities.Outcome, error) {
	r, err := entities.ParseRank(rank)
	if err != nil {
		return entities.Outcome{}, err
	}
	outcome := entities.Outcome{Rank: r}
	if amount != "" {
		value, err := strconv.ParseInt(strings.ReplaceAll(amount, ",", ""), 10, 64)
		if err != nil {
			return entities.Outcome{}, entities.NewValidationError("invalid amount %q", amount)
		}
		outcome.Amount = value
	}
	return outcome, nil
}

// formatSelection renders the selected numbers as [1 2 3]
func formatSelection(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// formatBalls renders a game, marking the numbers the user picked with *
func formatBalls(numbers, picked []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		ball := padLeft(strconv.Itoa(n), 2)
		if entities.Contains(picked, n) {
			ball += "*"
		} else {
			ball += " "
		}
		parts[i] = ball
	}
	return strings.Join(parts, " ")
}

func describeStatus(t *entities.Ticket) string {
	if t.IsPending() {
		return "pending"
	}
	if t.IsGameSet() {
		return fmt.Sprintf("%d wins, %s won", t.WinCount(), utils.FormatAmount(t.TotalAmount))
	}
	return describeOutcome(entities.Outcome{Rank: t.Result, Amount: t.Amount})
}

func describeOutcome(o entities.Outcome) string {
	if !o.IsWin() {
		return string(entities.RankLose)
	}
	return fmt.Sprintf("%s (%s won)", o.Rank, utils.FormatAmount(o.Amount))
}

// bar draws a share in percent as a 20 character bar
func bar(share float64) string {
	filled := int(share/5 + 0.5)
	if filled > 20 {
		filled = 20
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", 20-filled)
}

// heatCell picks a shade for an intensity in [0,1]
func heatCell(intensity float64) string {
	switch {
	case intensity >= 0.75:
		return "█"
	case intensity >= 0.5:
		return "▓"
	case intensity >= 0.25:
		return "▒"
	case intensity > 0:
		return "░"
	default:
		return " "
	}
}

// padRight pads a string to the right with spaces
func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// padLeft pads a string to the left with spaces
func padLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
