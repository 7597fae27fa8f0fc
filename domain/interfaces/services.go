package interfaces

import (
	"context"

	"lotto/domain/entities"
)

// RandomSource supplies the randomness of number generation.
// *math/rand/v2.Rand satisfies it, which lets tests inject seeded generators.
type RandomSource interface {
	// IntN returns a uniform int in [0,n)
	IntN(n int) int

	// Float64 returns a uniform float in [0,1)
	Float64() float64
}

// NumberGenerator defines the interface for producing ticket numbers
type NumberGenerator interface {
	// GenerateRandom completes userNumbers to a sorted 6-number game
	GenerateRandom(userNumbers []int) ([]int, error)

	// GenerateGameSet produces five independent games A-E around userNumbers.
	// At least one user number is required.
	GenerateGameSet(userNumbers []int) ([]entities.Game, error)

	// GenerateSmart completes userNumbers with the best scored numbers of the history
	GenerateSmart(history []*entities.Ticket, userNumbers []int) ([]int, error)

	// GenerateSmartExplained is GenerateSmart returning the score table the numbers were picked from
	GenerateSmartExplained(history []*entities.Ticket, userNumbers []int) ([]int, []entities.CandidateScore, error)

	// SmartScores scores the candidates without picking, best first.
	// Each call draws a fresh perturbation.
	SmartScores(history []*entities.Ticket, userNumbers []int) ([]entities.CandidateScore, error)
}

// PatternAnalyzer defines the statistics computed over a ticket history.
// Every operation is pure and recomputed from the full history.
type PatternAnalyzer interface {
	// ExtractNumbers flattens a ticket into its drawn numbers
	ExtractNumbers(ticket *entities.Ticket) []int

	// OddEvenBalance returns odd and even shares of all drawn numbers
	OddEvenBalance(history []*entities.Ticket) entities.OddEvenBalance

	// RangeBalance returns the share of each range bucket
	RangeBalance(history []*entities.Ticket) entities.RangeBalance

	// ConsecutiveRuns tallies maximal runs of consecutive numbers per game
	ConsecutiveRuns(history []*entities.Ticket) entities.ConsecutiveRuns

	// SumDistribution describes game sums; ok is false for an empty history
	SumDistribution(history []*entities.Ticket) (dist entities.SumDistribution, ok bool)

	// FrequencyTable counts how often each number was picked by the user
	FrequencyTable(history []*entities.Ticket) map[int]int

	// TopFrequent returns the limit most picked numbers, count desc then number asc
	TopFrequent(history []*entities.Ticket, limit int) []entities.NumberCount

	// NumberHeatmap counts every drawn number
	NumberHeatmap(history []*entities.Ticket) entities.Heatmap

	// Summarize aggregates cost and winnings of the history
	Summarize(history []*entities.Ticket) entities.HistorySummary

	// Analyze bundles every statistic of the history
	Analyze(history []*entities.Ticket) *entities.AggregateStats
}

// HistoryService defines the interface for ticket history operations
type HistoryService interface {
	// SaveSingle appends a single-game ticket
	SaveSingle(ctx context.Context, round int, numbers, userNumbers []int) (*entities.Ticket, error)

	// SaveGameSet appends a 5-game set ticket
	SaveGameSet(ctx context.Context, round int, games []entities.Game, userNumbers []int) (*entities.Ticket, error)

	// RecordResult completes a single-game ticket
	RecordResult(ctx context.Context, ticketID int64, outcome entities.Outcome) (*entities.Ticket, error)

	// RecordGameSetResults completes every game of a set ticket
	RecordGameSetResults(ctx context.Context, ticketID int64, results map[string]entities.Outcome) (*entities.Ticket, error)

	// GetTicket returns one ticket or ErrTicketNotFound
	GetTicket(ctx context.Context, ticketID int64) (*entities.Ticket, error)

	// List returns the history, oldest first
	List(ctx context.Context) ([]*entities.Ticket, error)

	// Clear removes the whole history
	Clear(ctx context.Context) (int, error)

	// Export snapshots the history as a backup
	Export(ctx context.Context) (*entities.Backup, error)

	// Import validates a backup and replaces the history with it
	Import(ctx context.Context, backup *entities.Backup) (int, error)
}
