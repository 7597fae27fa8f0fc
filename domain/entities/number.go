package entities

import (
	"fmt"
	"sort"
)

const (
	// MinNumber and MaxNumber bound the number universe
	MinNumber = 1
	MaxNumber = 45

	// UniverseSize is the count of selectable numbers
	UniverseSize = MaxNumber - MinNumber + 1

	// TicketSize is the count of numbers in one game
	TicketSize = 6

	// RangeBucketCount is the number of fixed sub-intervals of the universe
	RangeBucketCount = 5
)

// IsValidNumber reports whether n lies inside the universe
func IsValidNumber(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// RangeIndex returns the bucket of a number: 1-10, 11-20, 21-30, 31-40, 41-45
func RangeIndex(n int) int {
	switch {
	case n <= 10:
		return 0
	case n <= 20:
		return 1
	case n <= 30:
		return 2
	case n <= 40:
		return 3
	default:
		return 4
	}
}

// RangeLabel returns the display label of a bucket
func RangeLabel(bucket int) string {
	if bucket == RangeBucketCount-1 {
		return fmt.Sprintf("%d-%d", bucket*10+1, MaxNumber)
	}
	return fmt.Sprintf("%d-%d", bucket*10+1, bucket*10+10)
}

// IsOdd reports whether n is odd
func IsOdd(n int) bool {
	return n%2 == 1
}

// ValidateSelection checks a user selection: at most six unique numbers inside the universe
func ValidateSelection(numbers []int) error {
	if len(numbers) > TicketSize {
		return NewValidationError("at most %d numbers can be selected, got %d", TicketSize, len(numbers))
	}
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if !IsValidNumber(n) {
			return NewValidationError("number %d is outside %d-%d", n, MinNumber, MaxNumber)
		}
		if seen[n] {
			return NewValidationError("number %d is selected more than once", n)
		}
		seen[n] = true
	}
	return nil
}

// ValidateDraw checks a finished game: exactly six unique numbers inside the universe
func ValidateDraw(numbers []int) error {
	if len(numbers) != TicketSize {
		return NewValidationError("a game needs exactly %d numbers, got %d", TicketSize, len(numbers))
	}
	return ValidateSelection(numbers)
}

// SortedCopy returns an ascending copy of numbers
func SortedCopy(numbers []int) []int {
	out := make([]int, len(numbers))
	copy(out, numbers)
	sort.Ints(out)
	return out
}

// ContainsAll reports whether every value of subset appears in numbers
func ContainsAll(numbers, subset []int) bool {
	set := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		set[n] = true
	}
	for _, n := range subset {
		if !set[n] {
			return false
		}
	}
	return true
}

// Contains reports whether n appears in numbers
func Contains(numbers []int, n int) bool {
	for _, v := range numbers {
		if v == n {
			return true
		}
	}
	return false
}
