package model

import (
	"cmp"
	"slices"
)

type Matchup struct {
	LeagueID      string  `json:"league_id"`
	Year          int     `json:"year"`
	Week          int     `json:"week"`
	MatchupID     int     `json:"matchup_id"`
	HomeTeam      string  `json:"home_team"`
	AwayTeam      string  `json:"away_team"`
	HomeScore     float64 `json:"home_score"`
	AwayScore     float64 `json:"away_score"`
	HomeProjected float64 `json:"home_projected"`
	AwayProjected float64 `json:"away_projected"`

	// Optional, only some platforms or weeks populate these.
	BracketType    *string  `json:"bracket_type,omitempty"`
	Round          *string  `json:"round,omitempty"`
	TwoWeekPlayoff bool     `json:"two_week_playoff"`
	HomeTotal      *float64 `json:"home_total,omitempty"`
	AwayTotal      *float64 `json:"away_total,omitempty"`

	Roster []RosterEntry `json:"roster,omitempty"`
}

// MatchupKey is the natural key of a matchup. Matchup ids are only unique
// within a week for some exports, so the pairing is part of the key.
type MatchupKey struct {
	LeagueID  string
	Year      int
	Week      int
	MatchupID int
	HomeTeam  string
	AwayTeam  string
}

func (m *Matchup) Key() MatchupKey {
	return MatchupKey{
		LeagueID:  m.LeagueID,
		Year:      m.Year,
		Week:      m.Week,
		MatchupID: m.MatchupID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
	}
}

func (m *Matchup) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Side returns the matchup from the point of view of the given team.
func (m *Matchup) Side(team string) (own, opp float64, opponent string, ok bool) {
	switch team {
	case m.HomeTeam:
		return m.HomeScore, m.AwayScore, m.AwayTeam, true
	case m.AwayTeam:
		return m.AwayScore, m.HomeScore, m.HomeTeam, true
	default:
		return 0, 0, "", false
	}
}

// Winner returns the winning team name or "" for a tie.
func (m *Matchup) Winner() string {
	switch {
	case m.HomeScore > m.AwayScore:
		return m.HomeTeam
	case m.AwayScore > m.HomeScore:
		return m.AwayTeam
	default:
		return ""
	}
}

func (m *Matchup) IsPlayoff() bool {
	return m.BracketType != nil || m.Round != nil || m.TwoWeekPlayoff
}

// PlayoffRound is a single bracket matchup scored over consecutive weeks.
// Each constituent week is stored as its own Matchup carrying the round
// label and the aggregate totals.
type PlayoffRound struct {
	Year        int
	Label       string
	BracketType *string
	HomeTeam    string
	AwayTeam    string
	HomeTotal   float64
	AwayTotal   float64
	Games       []Matchup
}

// Matchups projects the round onto its per-week rows. Totals are oriented to
// each row's own home and away teams.
func (r *PlayoffRound) Matchups() []Matchup {
	result := make([]Matchup, 0, len(r.Games))
	for _, g := range r.Games {
		g.TwoWeekPlayoff = true
		g.Round = Ptr(r.Label)
		g.BracketType = r.BracketType
		if g.HomeTeam == r.HomeTeam {
			g.HomeTotal, g.AwayTotal = Ptr(r.HomeTotal), Ptr(r.AwayTotal)
		} else {
			g.HomeTotal, g.AwayTotal = Ptr(r.AwayTotal), Ptr(r.HomeTotal)
		}
		result = append(result, g)
	}
	return result
}

func (r *PlayoffRound) Weeks() []int {
	weeks := make([]int, 0, len(r.Games))
	for _, g := range r.Games {
		weeks = append(weeks, g.Week)
	}
	return weeks
}

// Winner returns the team with the higher aggregate total or "" for a tie.
func (r *PlayoffRound) Winner() string {
	switch {
	case r.HomeTotal > r.AwayTotal:
		return r.HomeTeam
	case r.AwayTotal > r.HomeTotal:
		return r.AwayTeam
	default:
		return ""
	}
}

type roundKey struct {
	year  int
	label string
	teamA string
	teamB string
}

// RecombineRounds groups two-week playoff rows back into their rounds. Rows
// that are not part of a two-week round are ignored. Rounds are returned in
// order of their first week.
func RecombineRounds(matchups []Matchup) []PlayoffRound {
	rounds := make(map[roundKey]*PlayoffRound)
	order := make([]roundKey, 0)

	for _, m := range matchups {
		if !m.TwoWeekPlayoff {
			continue
		}
		a, b := m.HomeTeam, m.AwayTeam
		if b < a {
			a, b = b, a
		}
		k := roundKey{year: m.Year, label: valueOr(m.Round, ""), teamA: a, teamB: b}

		r, found := rounds[k]
		if !found {
			r = &PlayoffRound{
				Year:        m.Year,
				Label:       k.label,
				BracketType: m.BracketType,
			}
			rounds[k] = r
			order = append(order, k)
		}
		r.Games = append(r.Games, m)
	}

	result := make([]PlayoffRound, 0, len(order))
	for _, k := range order {
		r := rounds[k]
		slices.SortFunc(r.Games, func(a, b Matchup) int {
			return cmp.Compare(a.Week, b.Week)
		})

		// The first week decides the round's home and away sides.
		first := r.Games[0]
		r.HomeTeam, r.AwayTeam = first.HomeTeam, first.AwayTeam
		if first.HomeTotal != nil && first.AwayTotal != nil {
			r.HomeTotal = *first.HomeTotal
			r.AwayTotal = *first.AwayTotal
		} else {
			for _, g := range r.Games {
				home, away, _, _ := g.Side(r.HomeTeam)
				r.HomeTotal += home
				r.AwayTotal += away
			}
		}
		result = append(result, *r)
	}

	slices.SortStableFunc(result, func(a, b PlayoffRound) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Games[0].Week, b.Games[0].Week)
	})
	return result
}

func Ptr[T any](v T) *T {
	return &v
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
