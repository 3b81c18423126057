package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
)

const (
	HighestScore           = "Highest Single Game Score"
	LowestScore            = "Lowest Single Game Score"
	HighestAvgPPG          = "Highest Avg PPG (Season)"
	BestRecord             = "Best Regular Season Record"
	MostChampionships      = "Most Championships"
	MostPlayoffAppearances = "Most Playoff Appearances"
	allTime                = "All-Time"
)

// Record is an all-time league record. Every holder tied at the record value
// is listed.
type Record struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Holder   string `json:"holder"`
	Year     string `json:"year"`
}

// holding is one candidate for a record.
type holding struct {
	owner string
	year  int
}

type holders struct {
	owners orderedSet[string]
	years  orderedSet[string]
}

func (h *holders) add(owner string, year string) {
	if owner != "" {
		h.owners.add(owner)
	}
	h.years.add(year)
}

func (h *holders) record(category, value string) Record {
	return Record{
		Category: category,
		Value:    value,
		Holder:   strings.Join(h.owners.values, ", "),
		Year:     strings.Join(h.years.values, ", "),
	}
}

// extreme finds the best value according to better and then collects every
// candidate holding exactly that value.
func extreme[T any](candidates []T, value func(T) float64, better func(a, b float64) bool) (float64, []T) {
	var best float64
	found := false
	for _, c := range candidates {
		v := value(c)
		if !found || better(v, best) {
			best = v
			found = true
		}
	}

	tied := make([]T, 0, 1)
	if !found {
		return 0, tied
	}
	for _, c := range candidates {
		if value(c) == best {
			tied = append(tied, c)
		}
	}
	return best, tied
}

func greater(a, b float64) bool { return a > b }
func less(a, b float64) bool    { return a < b }

type gameScore struct {
	holding
	score float64
}

type seasonPPG struct {
	holding
	ppg float64
}

type careerCount struct {
	owner string
	count int
}

// Records computes the league's all-time records.
func Records(teams []model.Team, matchups []model.Matchup, cfg Config) []Record {
	teams = sortedTeams(teams)
	own := newOwners(teams)

	scores := make([]gameScore, 0, len(matchups)*2)
	for _, m := range sortedMatchups(matchups) {
		scores = append(scores,
			gameScore{holding{own.of(m.LeagueID, m.Year, m.HomeTeam), m.Year}, m.HomeScore},
			gameScore{holding{own.of(m.LeagueID, m.Year, m.AwayTeam), m.Year}, m.AwayScore},
		)
	}

	records := make([]Record, 0, 6)
	score := func(g gameScore) float64 { return g.score }
	if best, tied := extreme(scores, score, greater); len(tied) > 0 {
		records = append(records, seasonRecord(HighestScore, formatScore(best), tied, func(g gameScore) holding { return g.holding }))
	}

	positive := make([]gameScore, 0, len(scores))
	for _, g := range scores {
		if g.score > 0 {
			positive = append(positive, g)
		}
	}
	if worst, tied := extreme(positive, score, less); len(tied) > 0 {
		records = append(records, seasonRecord(LowestScore, formatScore(worst), tied, func(g gameScore) holding { return g.holding }))
	}

	ppg := make([]seasonPPG, 0, len(teams))
	for _, t := range teams {
		if games := t.Wins + t.Losses; games > 0 {
			ppg = append(ppg, seasonPPG{holding{t.Owner, t.Year}, round(t.PointsFor/float64(games), 2)})
		}
	}
	if best, tied := extreme(ppg, func(s seasonPPG) float64 { return s.ppg }, greater); len(tied) > 0 {
		records = append(records, seasonRecord(HighestAvgPPG, fmt.Sprintf("%.2f", best), tied, func(s seasonPPG) holding { return s.holding }))
	}

	if r, ok := bestRecord(teams); ok {
		records = append(records, r)
	}

	champs := make([]careerCount, 0)
	appearances := make([]careerCount, 0)
	for _, m := range careers(teams, cfg) {
		if m.Championships > 0 {
			champs = append(champs, careerCount{m.Name, m.Championships})
		}
		appearances = append(appearances, careerCount{m.Name, m.PlayoffAppearances})
	}
	if r, ok := careerRecord(MostChampionships, champs); ok {
		records = append(records, r)
	}
	if r, ok := careerRecord(MostPlayoffAppearances, appearances); ok {
		records = append(records, r)
	}
	return records
}

func seasonRecord[T any](category, value string, tied []T, holdingOf func(T) holding) Record {
	h := holders{}
	for _, t := range tied {
		hd := holdingOf(t)
		h.add(hd.owner, strconv.Itoa(hd.year))
	}
	return h.record(category, value)
}

// bestRecord is the most wins in a season, with the fewest losses among the
// teams that share it.
func bestRecord(teams []model.Team) (Record, bool) {
	_, mostWins := extreme(teams, func(t model.Team) float64 { return float64(t.Wins) }, greater)
	if len(mostWins) == 0 {
		return Record{}, false
	}
	_, tied := extreme(mostWins, func(t model.Team) float64 { return float64(t.Losses) }, less)

	value := fmt.Sprintf("%d-%d", tied[0].Wins, tied[0].Losses)
	return seasonRecord(BestRecord, value, tied, func(t model.Team) holding { return holding{t.Owner, t.Year} }), true
}

func careerRecord(category string, counts []careerCount) (Record, bool) {
	best, tied := extreme(counts, func(c careerCount) float64 { return float64(c.count) }, greater)
	if len(tied) == 0 {
		return Record{}, false
	}

	h := holders{}
	for _, c := range tied {
		h.add(c.owner, allTime)
	}
	return h.record(category, strconv.Itoa(int(best))), true
}

// careers returns the manager aggregates in the order owners first appear.
func careers(teams []model.Team, cfg Config) []ManagerSummary {
	totals := aggregate(teams, cfg)

	order := orderedSet[string]{}
	for _, t := range teams {
		order.add(t.Owner)
	}
	result := make([]ManagerSummary, 0, len(order.values))
	for _, name := range order.values {
		if name != "" {
			result = append(result, totals[name].summary)
		}
	}
	return result
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
