package legacy

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingYear     = errors.New("legacy season has no year")
	ErrMissingLeagueID = errors.New("legacy season has no league id")
)

// Config carries the per-season settings the export itself doesn't contain.
type Config struct {
	// Used when the export has no league_id.
	LeagueID string
	// Playoff rounds of this season that are scored over two weeks.
	TwoWeekRounds []TwoWeekRound
	Log           logrus.FieldLogger
}

type TwoWeekRound struct {
	Label string
	Weeks []int
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Normalize maps a legacy export onto the canonical model. Individual bad
// entries are logged and replaced with fallback values; only a season that
// can't be identified is an error.
func Normalize(raw *RawSeason, cfg Config) (*model.Season, error) {
	if raw == nil {
		return nil, errors.New("legacy season is nil")
	}

	year := raw.Year()
	if year <= 0 {
		return nil, ErrMissingYear
	}

	leagueID := strings.TrimSpace(string(raw.LeagueID))
	if leagueID == "" {
		leagueID = cfg.LeagueID
	}
	if leagueID == "" {
		return nil, ErrMissingLeagueID
	}

	log := cfg.logger().WithFields(logrus.Fields{
		"platform": model.PlatformLegacy,
		"season":   year,
	})

	s := &model.Season{
		LeagueID:  leagueID,
		Year:      year,
		Platform:  model.PlatformLegacy,
		ScrapedAt: parseTime(raw.ScrapedAt, log),
	}

	s.Teams = normalizeTeams(raw.Standings, leagueID, year, log)
	s.Matchups = normalizeMatchups(raw.Matchups, leagueID, year, log)
	s.Matchups = applyTwoWeekRounds(s.Matchups, cfg.TwoWeekRounds, log)
	s.Draft = normalizeDraft(raw.Draft.Picks, leagueID, year, len(s.Teams), log)
	s.Transactions = normalizeTransactions(raw.Transactions, leagueID, year, log)

	return s, nil
}

func normalizeTeams(standings []rawTeam, leagueID string, year int, log logrus.FieldLogger) []model.Team {
	teams := make([]model.Team, 0, len(standings))
	for _, t := range standings {
		name := strings.TrimSpace(t.TeamName)
		if name == "" {
			log.WithField("owner", t.Owner).Warn("standings entry has no team name, skipping")
			continue
		}
		teams = append(teams, model.Team{
			LeagueID:      leagueID,
			Year:          year,
			Name:          name,
			Owner:         strings.TrimSpace(t.Owner),
			Rank:          t.Rank.Int(),
			Wins:          t.Wins.Int(),
			Losses:        t.Losses.Int(),
			Ties:          t.Ties.Int(),
			PointsFor:     checkedFloat(t.PointsFor, "points_for", name, log),
			PointsAgainst: checkedFloat(t.PointsAgainst, "points_against", name, log),
			Streak:        t.Streak,
		})
	}

	model.RankTeams(teams)
	return teams
}

func normalizeMatchups(weeks map[string][]rawMatchup, leagueID string, year int, log logrus.FieldLogger) []model.Matchup {
	result := make([]model.Matchup, 0, len(weeks)*6)

	for key, list := range weeks {
		keyWeek, keyErr := strconv.Atoi(strings.TrimSpace(key))

		for i, rm := range list {
			week := rm.Week.Int()
			if !rm.Week.Valid() {
				if keyErr != nil {
					log.WithField("week", key).Warn("matchup week is not a number, skipping")
					continue
				}
				week = keyWeek
			}

			matchupID := i + 1
			if rm.MatchupID.Valid() {
				matchupID = rm.MatchupID.Int()
			}

			result = append(result, toMatchup(rm, leagueID, year, week, matchupID, log))
		}
	}

	slices.SortStableFunc(result, func(a, b model.Matchup) int {
		if c := cmp.Compare(a.Week, b.Week); c != 0 {
			return c
		}
		return cmp.Compare(a.MatchupID, b.MatchupID)
	})
	return result
}

func toMatchup(rm rawMatchup, leagueID string, year, week, matchupID int, log logrus.FieldLogger) model.Matchup {
	mlog := log.WithFields(logrus.Fields{"week": week, "matchup_id": matchupID})
	rm = upgradeMatchup(rm, mlog)

	home := strings.TrimSpace(rm.HomeTeam)
	away := strings.TrimSpace(rm.AwayTeam)

	roster := append(toRosterEntries(rm.HomeRoster, home, mlog), toRosterEntries(rm.AwayRoster, away, mlog)...)

	m := model.Matchup{
		LeagueID:       leagueID,
		Year:           year,
		Week:           week,
		MatchupID:      matchupID,
		HomeTeam:       home,
		AwayTeam:       away,
		HomeScore:      checkedFloat(rm.HomeScore, "home_score", home, mlog),
		AwayScore:      checkedFloat(rm.AwayScore, "away_score", away, mlog),
		BracketType:    nonEmpty(rm.BracketType),
		Round:          nonEmpty(rm.Round),
		TwoWeekPlayoff: rm.TwoWeekPlayoff,
		Roster:         roster,
	}

	if rm.HomeProjected.Valid() {
		m.HomeProjected = rm.HomeProjected.Float()
	} else {
		m.HomeProjected = model.ProjectedTotal(roster, home)
	}
	if rm.AwayProjected.Valid() {
		m.AwayProjected = rm.AwayProjected.Float()
	} else {
		m.AwayProjected = model.ProjectedTotal(roster, away)
	}

	if rm.HomeTotalScore.Valid() && rm.AwayTotalScore.Valid() {
		m.HomeTotal = model.Ptr(rm.HomeTotalScore.Float())
		m.AwayTotal = model.Ptr(rm.AwayTotalScore.Float())
	}

	return m
}

func normalizeDraft(picks []rawPick, leagueID string, year, numTeams int, log logrus.FieldLogger) []model.DraftPick {
	result := make([]model.DraftPick, 0, len(picks))
	for _, p := range picks {
		overall := p.OverallPick.Int()
		if !p.OverallPick.Valid() {
			if numTeams == 0 || !p.Round.Valid() || !p.Pick.Valid() {
				log.WithField("player", p.PlayerName).Warn("draft pick has no overall pick number, skipping")
				continue
			}
			overall = (p.Round.Int()-1)*numTeams + p.Pick.Int()
		}

		result = append(result, model.DraftPick{
			LeagueID:    leagueID,
			Year:        year,
			Round:       p.Round.Int(),
			Pick:        p.Pick.Int(),
			OverallPick: overall,
			Team:        strings.TrimSpace(p.Team),
			PlayerName:  model.CleanPlayerName(p.PlayerName),
			Position:    p.Position,
			NFLTeam:     p.NFLTeam,
		})
	}

	slices.SortStableFunc(result, func(a, b model.DraftPick) int {
		return cmp.Compare(a.OverallPick, b.OverallPick)
	})
	return result
}

func normalizeTransactions(txns []rawTransaction, leagueID string, year int, log logrus.FieldLogger) []model.Transaction {
	result := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		result = append(result, model.Transaction{
			LeagueID:       leagueID,
			Year:           year,
			Date:           parseTime(t.Date, log),
			Type:           strings.TrimSpace(t.Type),
			Team:           strings.TrimSpace(t.Team),
			PlayersAdded:   t.PlayersAdded,
			PlayersDropped: t.PlayersDropped,
			Description:    t.Description,
		})
	}
	return result
}

var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	time.DateTime,
	time.DateOnly,
	"Jan 2, 2006",
	"1/2/2006",
}

func parseTime(s string, log logrus.FieldLogger) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, f := range timeFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC()
		}
	}
	log.WithField("value", s).Warn("unable to parse time")
	return time.Time{}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (r TwoWeekRound) String() string {
	return fmt.Sprintf("%s %v", r.Label, r.Weeks)
}
