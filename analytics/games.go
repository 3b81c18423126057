package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
)

// Game is one decided contest between two managers. A two-week playoff round
// is a single Game scored on its aggregate totals and dated by its first week.
type Game struct {
	Year      int     `json:"year"`
	Week      int     `json:"week"`
	Round     string  `json:"round,omitempty"`
	HomeTeam  string  `json:"home_team"`
	HomeOwner string  `json:"home_owner"`
	HomeScore float64 `json:"home_score"`
	AwayTeam  string  `json:"away_team"`
	AwayOwner string  `json:"away_owner"`
	AwayScore float64 `json:"away_score"`
}

// Winner returns the winning owner or "" for a tie.
func (g *Game) Winner() string {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.HomeOwner
	case g.AwayScore > g.HomeScore:
		return g.AwayOwner
	default:
		return ""
	}
}

func (g *Game) involves(owner string) bool {
	return g.HomeOwner == owner || g.AwayOwner == owner
}

func (g *Game) opponent(owner string) string {
	if g.HomeOwner == owner {
		return g.AwayOwner
	}
	return g.HomeOwner
}

// games collapses matchups into Games, counting each two-week round once.
func games(matchups []model.Matchup, own *owners) []Game {
	result := make([]Game, 0, len(matchups))
	for _, m := range matchups {
		if m.TwoWeekPlayoff {
			continue
		}
		g := Game{
			Year:      m.Year,
			Week:      m.Week,
			HomeTeam:  m.HomeTeam,
			HomeOwner: own.of(m.LeagueID, m.Year, m.HomeTeam),
			HomeScore: m.HomeScore,
			AwayTeam:  m.AwayTeam,
			AwayOwner: own.of(m.LeagueID, m.Year, m.AwayTeam),
			AwayScore: m.AwayScore,
		}
		if m.Round != nil {
			g.Round = *m.Round
		}
		result = append(result, g)
	}

	for _, r := range model.RecombineRounds(matchups) {
		first := r.Games[0]
		result = append(result, Game{
			Year:      r.Year,
			Week:      first.Week,
			Round:     r.Label,
			HomeTeam:  r.HomeTeam,
			HomeOwner: own.of(first.LeagueID, r.Year, r.HomeTeam),
			HomeScore: r.HomeTotal,
			AwayTeam:  r.AwayTeam,
			AwayOwner: own.of(first.LeagueID, r.Year, r.AwayTeam),
			AwayScore: r.AwayTotal,
		})
	}
	return result
}

type HeadToHeadResult struct {
	ManagerA string `json:"manager_a"`
	ManagerB string `json:"manager_b"`
	WinsA    int    `json:"wins_a"`
	WinsB    int    `json:"wins_b"`
	Ties     int    `json:"ties"`
	Games    []Game `json:"games"`
}

// HeadToHead lists every game between managers a and b, most recent first.
func HeadToHead(a, b string, teams []model.Team, matchups []model.Matchup) (*HeadToHeadResult, error) {
	own := newOwners(teams)
	for _, name := range []string{a, b} {
		if !own.has(name) {
			return nil, fmt.Errorf("%w: %q", ErrManagerNotFound, name)
		}
	}

	h2h := &HeadToHeadResult{ManagerA: a, ManagerB: b, Games: make([]Game, 0)}
	if a == b {
		return h2h, nil
	}
	for _, g := range games(matchups, own) {
		if !g.involves(a) || g.opponent(a) != b {
			continue
		}
		switch g.Winner() {
		case a:
			h2h.WinsA++
		case b:
			h2h.WinsB++
		default:
			h2h.Ties++
		}
		h2h.Games = append(h2h.Games, g)
	}

	slices.SortStableFunc(h2h.Games, func(x, y Game) int {
		if c := cmp.Compare(y.Year, x.Year); c != 0 {
			return c
		}
		return cmp.Compare(y.Week, x.Week)
	})
	return h2h, nil
}

type Rivalry struct {
	Opponent   string  `json:"opponent"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Ties       int     `json:"ties"`
	WinPercent float64 `json:"win_pct"`
}

// Rivalries returns name's record against every opponent, most played first.
func Rivalries(name string, teams []model.Team, matchups []model.Matchup) ([]Rivalry, error) {
	own := newOwners(teams)
	if !own.has(name) {
		return nil, fmt.Errorf("%w: %q", ErrManagerNotFound, name)
	}

	byOpponent := make(map[string]*Rivalry)
	for _, g := range games(matchups, own) {
		if !g.involves(name) {
			continue
		}
		opp := g.opponent(name)
		if opp == "" || opp == name {
			continue
		}

		r, found := byOpponent[opp]
		if !found {
			r = &Rivalry{Opponent: opp}
			byOpponent[opp] = r
		}
		r.Games++
		switch g.Winner() {
		case name:
			r.Wins++
		case "":
			r.Ties++
		default:
			r.Losses++
		}
	}

	result := make([]Rivalry, 0, len(byOpponent))
	for _, r := range byOpponent {
		r.WinPercent = round(float64(r.Wins)/float64(r.Games)*100, 1)
		result = append(result, *r)
	}
	slices.SortFunc(result, func(a, b Rivalry) int {
		if c := cmp.Compare(b.Games, a.Games); c != 0 {
			return c
		}
		return strings.Compare(a.Opponent, b.Opponent)
	})
	return result, nil
}

// WeeklyResult is one week from a single manager's point of view.
type WeeklyResult struct {
	Year          int     `json:"year"`
	Week          int     `json:"week"`
	Team          string  `json:"team"`
	Score         float64 `json:"score"`
	Opponent      string  `json:"opponent"`
	OpponentTeam  string  `json:"opponent_team"`
	OpponentScore float64 `json:"opponent_score"`
	Result        string  `json:"result"`
	Playoff       bool    `json:"playoff"`
}

func result(own, opp float64) string {
	switch {
	case own > opp:
		return "W"
	case own < opp:
		return "L"
	default:
		return "T"
	}
}

func weeklyResult(m *model.Matchup, team, opponent string) WeeklyResult {
	score, oppScore, oppTeam, _ := m.Side(team)
	return WeeklyResult{
		Year:          m.Year,
		Week:          m.Week,
		Team:          team,
		Score:         score,
		Opponent:      opponent,
		OpponentTeam:  oppTeam,
		OpponentScore: oppScore,
		Result:        result(score, oppScore),
		Playoff:       m.IsPlayoff(),
	}
}

// WeeklyResults lists every week name played, newest season first and in week
// order within a season. Each week of a two-week round is its own result.
func WeeklyResults(name string, teams []model.Team, matchups []model.Matchup) ([]WeeklyResult, error) {
	own := newOwners(teams)
	if !own.has(name) {
		return nil, fmt.Errorf("%w: %q", ErrManagerNotFound, name)
	}

	results := make([]WeeklyResult, 0, 16)
	for _, m := range sortedMatchups(matchups) {
		home := own.of(m.LeagueID, m.Year, m.HomeTeam)
		away := own.of(m.LeagueID, m.Year, m.AwayTeam)
		switch name {
		case home:
			results = append(results, weeklyResult(&m, m.HomeTeam, away))
		case away:
			results = append(results, weeklyResult(&m, m.AwayTeam, home))
		}
	}

	slices.SortStableFunc(results, func(a, b WeeklyResult) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Week, b.Week)
	})
	return results, nil
}

// WeeklyScore is one team's line for a week of a season.
type WeeklyScore struct {
	WeeklyResult
	Owner     string  `json:"owner"`
	Projected float64 `json:"projected"`
}

// WeeklyScores lists every team's score in each week of year. When manager is
// not empty only that manager's lines are returned.
func WeeklyScores(teams []model.Team, matchups []model.Matchup, year int, manager string) []WeeklyScore {
	own := newOwners(teams)

	scores := make([]WeeklyScore, 0, len(matchups)*2)
	for _, m := range sortedMatchups(matchups) {
		if m.Year != year {
			continue
		}
		home := own.of(m.LeagueID, m.Year, m.HomeTeam)
		away := own.of(m.LeagueID, m.Year, m.AwayTeam)

		if manager == "" || manager == home {
			scores = append(scores, WeeklyScore{
				WeeklyResult: weeklyResult(&m, m.HomeTeam, away),
				Owner:        home,
				Projected:    m.HomeProjected,
			})
		}
		if manager == "" || manager == away {
			scores = append(scores, WeeklyScore{
				WeeklyResult: weeklyResult(&m, m.AwayTeam, home),
				Owner:        away,
				Projected:    m.AwayProjected,
			})
		}
	}
	return scores
}
