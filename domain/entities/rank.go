package entities

import "strings"

// Rank is the prize tier entered for a game after the draw
type Rank string

const (
	RankLose   Rank = "lose"
	RankFifth  Rank = "5th" // 3 numbers matched
	RankFourth Rank = "4th" // 4 numbers matched
	RankThird  Rank = "3rd" // 5 numbers matched
	RankSecond Rank = "2nd" // 5 numbers plus bonus
	RankFirst  Rank = "1st" // all 6 numbers matched
)

// Ranks lists every tier from no prize to jackpot
var Ranks = []Rank{RankLose, RankFifth, RankFourth, RankThird, RankSecond, RankFirst}

// legacyRankLabels maps the labels written by the browser app to ranks
var legacyRankLabels = map[string]Rank{
	"꽝":  RankLose,
	"5등": RankFifth,
	"4등": RankFourth,
	"3등": RankThird,
	"2등": RankSecond,
	"1등": RankFirst,
}

// ParseRank converts user or backup input into a Rank
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	if r, ok := legacyRankLabels[s]; ok {
		return r, nil
	}
	switch strings.ToLower(s) {
	case "lose", "none", "0", "-":
		return RankLose, nil
	case "5th", "5":
		return RankFifth, nil
	case "4th", "4":
		return RankFourth, nil
	case "3rd", "3":
		return RankThird, nil
	case "2nd", "2":
		return RankSecond, nil
	case "1st", "1":
		return RankFirst, nil
	}
	return "", NewValidationError("unknown rank %q", s)
}

// IsValid reports whether r is a known tier
func (r Rank) IsValid() bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}

// IsWin reports whether r is a prize tier
func (r Rank) IsWin() bool {
	return r != "" && r != RankLose
}

func (o Outcome) validate() error {
	if !o.Rank.IsValid() {
		return NewValidationError("unknown rank %q", o.Rank)
	}
	if o.Amount < 0 {
		return NewValidationError("prize amount cannot be negative, got %d", o.Amount)
	}
	return nil
}
