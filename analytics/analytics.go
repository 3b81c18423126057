// Package analytics computes league history from stored teams and matchups.
// Every function is a pure computation over its arguments.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var ErrManagerNotFound = errors.New("manager not found")

const (
	defaultFirstSeasonPlayoffTeams = 4
	defaultPlayoffTeams            = 6
)

// Config holds the league rules the analytics depend on.
type Config struct {
	// Explicit playoff cutoffs keyed by season year.
	PlayoffTeams map[int]int
	// Used for the earliest season in the data when it has no explicit cutoff.
	FirstSeasonPlayoffTeams int
	// Used for every other season without an explicit cutoff.
	DefaultPlayoffTeams int
}

// PlayoffCutoff returns the lowest rank that still made the playoffs in year.
// firstYear is the earliest season present in the data.
func (c Config) PlayoffCutoff(year, firstYear int) int {
	if n, found := c.PlayoffTeams[year]; found && n > 0 {
		return n
	}
	if year == firstYear {
		if c.FirstSeasonPlayoffTeams > 0 {
			return c.FirstSeasonPlayoffTeams
		}
		return defaultFirstSeasonPlayoffTeams
	}
	if c.DefaultPlayoffTeams > 0 {
		return c.DefaultPlayoffTeams
	}
	return defaultPlayoffTeams
}

func (c Config) madePlayoffs(rank, year, firstYear int) bool {
	return rank > 0 && rank <= c.PlayoffCutoff(year, firstYear)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// formatRecord renders a win-loss record. Ties are only shown when there are
// any.
func formatRecord(wins, losses, ties int) string {
	if ties > 0 {
		return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

func firstYear(years []int) int {
	if len(years) == 0 {
		return 0
	}
	return slices.Min(years)
}

// orderedSet keeps distinct values in the order they were first added.
type orderedSet[T comparable] struct {
	seen   map[T]bool
	values []T
}

func (s *orderedSet[T]) add(v T) {
	if s.seen == nil {
		s.seen = make(map[T]bool)
	}
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.values = append(s.values, v)
}
