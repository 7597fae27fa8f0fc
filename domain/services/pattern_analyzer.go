package services

import (
	"math"
	"sort"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// TopFrequentLimit is the size of the most-picked list shown with the statistics
const TopFrequentLimit = 10

// patternAnalyzer computes statistics over a ticket history. It holds no state.
type patternAnalyzer struct{}

// NewPatternAnalyzer creates a new pattern analyzer
func NewPatternAnalyzer() interfaces.PatternAnalyzer {
	return &patternAnalyzer{}
}

// ExtractNumbers returns the 6 numbers of a single ticket or the 30 numbers of a set
func (a *patternAnalyzer) ExtractNumbers(ticket *entities.Ticket) []int {
	if ticket == nil {
		return nil
	}
	var numbers []int
	for _, draw := range ticket.Draws() {
		numbers = append(numbers, draw...)
	}
	return numbers
}

func (a *patternAnalyzer) OddEvenBalance(history []*entities.Ticket) entities.OddEvenBalance {
	odd, total := 0, 0
	for _, ticket := range history {
		for _, n := range a.ExtractNumbers(ticket) {
			if entities.IsOdd(n) {
				odd++
			}
			total++
		}
	}
	if total == 0 {
		return entities.OddEvenBalance{}
	}
	return entities.OddEvenBalance{
		Odd:  percent(odd, total),
		Even: percent(total-odd, total),
	}
}

func (a *patternAnalyzer) RangeBalance(history []*entities.Ticket) entities.RangeBalance {
	var counts [entities.RangeBucketCount]int
	total := 0
	for _, ticket := range history {
		for _, n := range a.ExtractNumbers(ticket) {
			counts[entities.RangeIndex(n)]++
			total++
		}
	}

	var balance entities.RangeBalance
	if total == 0 {
		return balance
	}
	for i, c := range counts {
		balance[i] = percent(c, total)
	}
	return balance
}

// ConsecutiveRuns scans the extracted numbers of each ticket, so the 30 numbers of a set
// are sorted and scanned together
func (a *patternAnalyzer) ConsecutiveRuns(history []*entities.Ticket) entities.ConsecutiveRuns {
	var runs entities.ConsecutiveRuns
	for _, ticket := range history {
		for _, length := range runLengths(a.ExtractNumbers(ticket)) {
			switch {
			case length == 2:
				runs.Pairs++
			case length == 3:
				runs.Triples++
			case length >= 4:
				runs.FourPlus++
			}
		}
	}
	return runs
}

// SumDistribution sums each game; every sub-game of a set counts as its own draw
func (a *patternAnalyzer) SumDistribution(history []*entities.Ticket) (entities.SumDistribution, bool) {
	var dist entities.SumDistribution
	total := 0
	for _, ticket := range history {
		if ticket == nil {
			continue
		}
		for _, draw := range ticket.Draws() {
			sum := 0
			for _, n := range draw {
				sum += n
			}
			if dist.Count == 0 || sum > dist.Max {
				dist.Max = sum
			}
			if dist.Count == 0 || sum < dist.Min {
				dist.Min = sum
			}
			total += sum
			dist.Count++
		}
	}
	if dist.Count == 0 {
		return entities.SumDistribution{}, false
	}
	dist.Average = float64(total) / float64(dist.Count)
	return dist, true
}

// FrequencyTable counts the numbers the user picked, not the generated ones
func (a *patternAnalyzer) FrequencyTable(history []*entities.Ticket) map[int]int {
	table := make(map[int]int)
	for _, ticket := range history {
		if ticket == nil {
			continue
		}
		for _, n := range ticket.UserNumbers {
			table[n]++
		}
	}
	return table
}

func (a *patternAnalyzer) TopFrequent(history []*entities.Ticket, limit int) []entities.NumberCount {
	table := a.FrequencyTable(history)
	counts := make([]entities.NumberCount, 0, len(table))
	for n, c := range table {
		counts = append(counts, entities.NumberCount{Number: n, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Number < counts[j].Number
	})
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func (a *patternAnalyzer) NumberHeatmap(history []*entities.Ticket) entities.Heatmap {
	var heatmap entities.Heatmap
	for _, ticket := range history {
		for _, n := range a.ExtractNumbers(ticket) {
			if !entities.IsValidNumber(n) {
				continue
			}
			heatmap.Counts[n]++
			if heatmap.Counts[n] > heatmap.MaxCount {
				heatmap.MaxCount = heatmap.Counts[n]
			}
		}
	}
	return heatmap
}

// Summarize totals the investment and winnings. Sets count one win per winning sub-game.
func (a *patternAnalyzer) Summarize(history []*entities.Ticket) entities.HistorySummary {
	summary := entities.HistorySummary{TotalGames: len(history)}
	for _, ticket := range history {
		if ticket == nil {
			continue
		}
		winnings := ticket.Winnings()
		summary.TotalInvestment += ticket.EffectiveCost()
		summary.TotalWinnings += winnings
		summary.WinCount += ticket.WinCount()
		if winnings > summary.BestWin {
			summary.BestWin = winnings
		}
		if ticket.IsPending() {
			summary.PendingCount++
		}
	}
	if summary.TotalInvestment > 0 {
		rate := float64(summary.TotalWinnings-summary.TotalInvestment) / float64(summary.TotalInvestment) * 100
		summary.ProfitRate = math.Round(rate*10) / 10
	}
	return summary
}

func (a *patternAnalyzer) Analyze(history []*entities.Ticket) *entities.AggregateStats {
	stats := &entities.AggregateStats{
		Summary:       a.Summarize(history),
		FrequentPicks: a.TopFrequent(history, TopFrequentLimit),
		Heatmap:       a.NumberHeatmap(history),
		OddEven:       a.OddEvenBalance(history),
		Ranges:        a.RangeBalance(history),
		Consecutive:   a.ConsecutiveRuns(history),
		HistorySize:   len(history),
	}
	if sums, ok := a.SumDistribution(history); ok {
		stats.Sums = &sums
	}
	return stats
}

// runLengths returns the lengths of the maximal runs of consecutive integers longer than one.
// A repeated value, which only sets produce, ends the current run.
func runLengths(numbers []int) []int {
	if len(numbers) < 2 {
		return nil
	}
	sorted := entities.SortedCopy(numbers)

	var lengths []int
	current := 1
	for i := 1; i < len(sorted); i++ {
		switch sorted[i] - sorted[i-1] {
		case 1:
			current++
		default:
			if current > 1 {
				lengths = append(lengths, current)
			}
			current = 1
		}
	}
	if current > 1 {
		lengths = append(lengths, current)
	}
	return lengths
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
