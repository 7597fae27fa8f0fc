package services

import (
	"sort"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	// MinSmartHistory is the number of tickets smart generation needs
	MinSmartHistory = 3

	rarityFactor     = 2.0
	recencyFactor    = 10.0
	parityBonus      = 5.0
	rangeBonus       = 3.0
	rangeShareFloor  = 20.0
	perturbationSpan = 10.0
)

// numberGenerator implements random and history-scored number generation
type numberGenerator struct {
	rng      interfaces.RandomSource
	analyzer interfaces.PatternAnalyzer
}

// NewNumberGenerator creates a new number generator
func NewNumberGenerator(rng interfaces.RandomSource, analyzer interfaces.PatternAnalyzer) interfaces.NumberGenerator {
	return &numberGenerator{
		rng:      rng,
		analyzer: analyzer,
	}
}

// GenerateRandom fills the open slots by sampling without replacement from the numbers not picked
func (g *numberGenerator) GenerateRandom(userNumbers []int) ([]int, error) {
	if err := entities.ValidateSelection(userNumbers); err != nil {
		return nil, err
	}
	if len(userNumbers) == entities.TicketSize {
		return entities.SortedCopy(userNumbers), nil
	}

	pool := availableNumbers(userNumbers)
	need := entities.TicketSize - len(userNumbers)

	// Partial Fisher-Yates: the first need slots end up as a uniform sample
	for i := 0; i < need; i++ {
		j := i + g.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	numbers := append(entities.SortedCopy(userNumbers), pool[:need]...)
	sort.Ints(numbers)
	return numbers, nil
}

// GenerateGameSet builds five independent games labelled A-E
func (g *numberGenerator) GenerateGameSet(userNumbers []int) ([]entities.Game, error) {
	if len(userNumbers) == 0 {
		return nil, entities.NewValidationError("a game set needs at least one selected number")
	}
	if err := entities.ValidateSelection(userNumbers); err != nil {
		return nil, err
	}

	games := make([]entities.Game, 0, entities.GameSetSize)
	for _, letter := range entities.GameLetters {
		numbers, err := g.GenerateRandom(userNumbers)
		if err != nil {
			return nil, err
		}
		games = append(games, entities.Game{
			Letter:      letter,
			Numbers:     numbers,
			UserNumbers: entities.SortedCopy(userNumbers),
		})
	}
	return games, nil
}

// GenerateSmart completes the selection with the highest scored numbers
func (g *numberGenerator) GenerateSmart(history []*entities.Ticket, userNumbers []int) ([]int, error) {
	numbers, _, err := g.GenerateSmartExplained(history, userNumbers)
	return numbers, err
}

// GenerateSmartExplained scores the candidates once and picks from that table, so the
// returned scores are the ones the numbers were chosen by
func (g *numberGenerator) GenerateSmartExplained(history []*entities.Ticket, userNumbers []int) ([]int, []entities.CandidateScore, error) {
	scores, err := g.SmartScores(history, userNumbers)
	if err != nil {
		return nil, nil, err
	}

	need := entities.TicketSize - len(userNumbers)
	picked := entities.SortedCopy(userNumbers)
	for i := 0; i < need && i < len(scores); i++ {
		picked = append(picked, scores[i].Number)
	}

	// Only reachable if the candidate table came up short
	if len(picked) < entities.TicketSize {
		pool := availableNumbers(picked)
		for len(picked) < entities.TicketSize {
			j := g.rng.IntN(len(pool))
			picked = append(picked, pool[j])
			pool = append(pool[:j], pool[j+1:]...)
		}
	}

	sort.Ints(picked)

	log.WithFields(log.Fields{
		"historySize": len(history),
		"userNumbers": len(userNumbers),
		"numbers":     picked,
	}).Debug("Generated smart numbers")

	return picked, scores, nil
}

// SmartScores scores every number not already selected, best first:
//
//	score = (45 - frequency) * 2 + weight * 10
//	      + 5 when the parity of the number holds less than half of the history
//	      + 3 when its range bucket holds less than a fifth of the history
//	      + a uniform perturbation in [0,10)
func (g *numberGenerator) SmartScores(history []*entities.Ticket, userNumbers []int) ([]entities.CandidateScore, error) {
	if err := entities.ValidateSelection(userNumbers); err != nil {
		return nil, err
	}
	if len(history) < MinSmartHistory {
		return nil, &entities.InsufficientDataError{MinRequired: MinSmartHistory, Actual: len(history)}
	}

	var frequency [entities.UniverseSize + 1]int
	var weight [entities.UniverseSize + 1]float64
	for i, ticket := range history {
		w := float64(i+1) / float64(len(history))
		for _, n := range g.analyzer.ExtractNumbers(ticket) {
			if !entities.IsValidNumber(n) {
				continue
			}
			frequency[n]++
			weight[n] += w
		}
	}

	oddEven := g.analyzer.OddEvenBalance(history)
	ranges := g.analyzer.RangeBalance(history)

	scores := make([]entities.CandidateScore, 0, entities.UniverseSize)
	for _, n := range availableNumbers(userNumbers) {
		score := float64(entities.UniverseSize-frequency[n])*rarityFactor + weight[n]*recencyFactor
		if oddEven.UnderRepresented(n) {
			score += parityBonus
		}
		if ranges[entities.RangeIndex(n)] < rangeShareFloor {
			score += rangeBonus
		}
		score += g.rng.Float64() * perturbationSpan

		scores = append(scores, entities.CandidateScore{
			Number:    n,
			Frequency: frequency[n],
			Weight:    weight[n],
			Score:     score,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores, nil
}

// availableNumbers returns the universe minus taken, ascending
func availableNumbers(taken []int) []int {
	pool := make([]int, 0, entities.UniverseSize)
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		if !entities.Contains(taken, n) {
			pool = append(pool, n)
		}
	}
	return pool
}
