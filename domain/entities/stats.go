package entities

import "encoding/json"

// OddEvenBalance holds the share of odd and even numbers in percent
type OddEvenBalance struct {
	Odd  float64 `json:"odd"`
	Even float64 `json:"even"`
}

// UnderRepresented reports whether the parity of n holds less than half of the draws
func (b OddEvenBalance) UnderRepresented(n int) bool {
	if IsOdd(n) {
		return b.Odd < 50
	}
	return b.Even < 50
}

// RangeBalance holds the share of each range bucket in percent
type RangeBalance [RangeBucketCount]float64

// ConsecutiveRuns tallies maximal runs of consecutive numbers by length
type ConsecutiveRuns struct {
	Pairs    int `json:"pairs"`     // runs of exactly 2
	Triples  int `json:"triples"`   // runs of exactly 3
	FourPlus int `json:"four_plus"` // runs of 4 or more
}

// SumDistribution describes the sums of 6-number draws
type SumDistribution struct {
	Average float64 `json:"average"`
	Max     int     `json:"max"`
	Min     int     `json:"min"`
	Count   int     `json:"count"`
}

// NumberCount pairs a number with how often it occurred
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Heatmap holds the occurrence count of every number across all draws
type Heatmap struct {
	Counts   [UniverseSize + 1]int // indexed by number, slot 0 unused
	MaxCount int
}

// MarshalJSON emits the counts as a number-ordered list
func (h Heatmap) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Counts   []NumberCount `json:"counts"`
		MaxCount int           `json:"max_count"`
	}{Counts: h.Entries(), MaxCount: h.MaxCount})
}

// Count returns how often n was drawn
func (h Heatmap) Count(n int) int {
	if !IsValidNumber(n) {
		return 0
	}
	return h.Counts[n]
}

// Intensity returns the count of n relative to the hottest number, in [0,1]
func (h Heatmap) Intensity(n int) float64 {
	if h.MaxCount == 0 {
		return 0
	}
	return float64(h.Count(n)) / float64(h.MaxCount)
}

// Entries returns the counts as a list ordered by number
func (h Heatmap) Entries() []NumberCount {
	entries := make([]NumberCount, 0, UniverseSize)
	for n := MinNumber; n <= MaxNumber; n++ {
		entries = append(entries, NumberCount{Number: n, Count: h.Counts[n]})
	}
	return entries
}

// HistorySummary aggregates spending and winnings over the history
type HistorySummary struct {
	TotalGames      int     `json:"total_games"`
	TotalInvestment int64   `json:"total_investment"`
	TotalWinnings   int64   `json:"total_winnings"`
	ProfitRate      float64 `json:"profit_rate"`
	WinCount        int     `json:"win_count"`
	BestWin         int64   `json:"best_win"`
	PendingCount    int     `json:"pending_count"`
}

// AggregateStats bundles every derived statistic of a history snapshot
type AggregateStats struct {
	Summary       HistorySummary   `json:"summary"`
	FrequentPicks []NumberCount    `json:"frequent_picks"`
	Heatmap       Heatmap          `json:"heatmap"`
	OddEven       OddEvenBalance   `json:"odd_even"`
	Ranges        RangeBalance     `json:"ranges"`
	Consecutive   ConsecutiveRuns  `json:"consecutive"`
	Sums          *SumDistribution `json:"sums,omitempty"` // nil for an empty history
	HistorySize   int              `json:"history_size"`
}

// CandidateScore is the smart-generation score of one number
type CandidateScore struct {
	Number    int     `json:"number"`
	Frequency int     `json:"frequency"`
	Weight    float64 `json:"weight"`
	Score     float64 `json:"score"`
}
