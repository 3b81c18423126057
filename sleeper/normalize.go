package sleeper

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

const (
	championshipBracket = "Championship"
	consolationBracket  = "Consolation"
)

var (
	ErrMissingYear     = errors.New("sleeper season has no year")
	ErrMissingLeagueID = errors.New("sleeper season has no league id")
)

// Normalize maps a Sleeper export onto the canonical model, resolving player
// ids through dir.
func Normalize(raw *RawSeason, dir Directory) (*model.Season, error) {
	return NormalizeWithLog(raw, dir, logrus.StandardLogger())
}

func NormalizeWithLog(raw *RawSeason, dir Directory, log logrus.FieldLogger) (*model.Season, error) {
	if raw == nil {
		return nil, errors.New("sleeper season is nil")
	}
	year := raw.year()
	if year <= 0 {
		return nil, ErrMissingYear
	}
	leagueID := strings.TrimSpace(raw.League.LeagueID)
	if leagueID == "" {
		return nil, ErrMissingLeagueID
	}
	if dir == nil {
		dir = Directory{}
	}

	n := &normalizer{
		leagueID: leagueID,
		year:     year,
		idx:      newRosterIndex(raw.Users, raw.Rosters),
		dir:      dir,
		log: log.WithFields(logrus.Fields{
			"platform": model.PlatformModern,
			"season":   year,
		}),
	}

	s := &model.Season{
		LeagueID:  leagueID,
		Year:      year,
		Platform:  model.PlatformModern,
		ScrapedAt: parseTime(raw.ScrapedAt),
	}
	s.Teams = n.teams(raw.Rosters)

	games := n.matchups(raw.Matchups)
	n.labelBrackets(games, raw.League.Settings.PlayoffWeekStart, raw.WinnersBracket, championshipBracket)
	n.labelBrackets(games, raw.League.Settings.PlayoffWeekStart, raw.LosersBracket, consolationBracket)
	s.Matchups = make([]model.Matchup, 0, len(games))
	for _, g := range games {
		s.Matchups = append(s.Matchups, g.Matchup)
	}

	if len(raw.Drafts) > 0 {
		s.Draft = n.draft(raw.Drafts[0].Picks)
	}
	s.Transactions = n.transactions(raw.Transactions)

	return s, nil
}

type normalizer struct {
	leagueID string
	year     int
	idx      *rosterIndex
	dir      Directory
	log      logrus.FieldLogger
}

func (n *normalizer) teams(rosters []rawRoster) []model.Team {
	teams := make([]model.Team, 0, len(rosters))
	for _, r := range rosters {
		t, _ := n.idx.team(r.RosterID)
		team := model.Team{
			LeagueID:      n.leagueID,
			Year:          n.year,
			Name:          t.name,
			Owner:         t.owner,
			Wins:          r.Settings.Wins,
			Losses:        r.Settings.Losses,
			Ties:          r.Settings.Ties,
			PointsFor:     r.Settings.pointsFor(),
			PointsAgainst: r.Settings.pointsAgainst(),
		}
		if r.Settings.FinalRank != nil {
			team.Rank = *r.Settings.FinalRank
		}
		teams = append(teams, team)
	}

	model.RankTeams(teams)
	return teams
}

// game is a matchup along with the roster ids of its two sides.
type game struct {
	model.Matchup
	homeRoster int
	awayRoster int
}

func (n *normalizer) matchups(weeks map[string][]rawMatchup) []*game {
	keys := make([]int, 0, len(weeks))
	byWeek := make(map[int][]rawMatchup, len(weeks))
	for k, entries := range weeks {
		w, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			n.log.WithField("week", k).Warn("matchup week is not a number, skipping")
			continue
		}
		keys = append(keys, w)
		byWeek[w] = entries
	}
	slices.Sort(keys)

	result := make([]*game, 0, len(keys)*6)
	for _, week := range keys {
		result = append(result, n.pairWeek(week, byWeek[week])...)
	}
	return result
}

// pairWeek groups a week's entries by matchup id. The entry listed first is
// the home side.
func (n *normalizer) pairWeek(week int, entries []rawMatchup) []*game {
	wlog := n.log.WithField("week", week)

	groups := make(map[int][]rawMatchup)
	order := make([]int, 0, len(entries)/2)
	for _, e := range entries {
		if e.MatchupID == nil {
			wlog.WithField("roster_id", e.RosterID).Debug("no matchup id, treating as a bye")
			continue
		}
		id := *e.MatchupID
		if _, found := groups[id]; !found {
			order = append(order, id)
		}
		groups[id] = append(groups[id], e)
	}

	result := make([]*game, 0, len(order))
	for _, id := range order {
		group := groups[id]
		if len(group) != 2 {
			wlog.WithFields(logrus.Fields{
				"matchup_id": id,
				"entries":    len(group),
			}).Warn("matchup does not have exactly two teams, skipping")
			continue
		}
		result = append(result, n.toGame(week, id, group[0], group[1]))
	}

	slices.SortStableFunc(result, func(a, b *game) int {
		return cmp.Compare(a.MatchupID, b.MatchupID)
	})
	return result
}

func (n *normalizer) toGame(week, matchupID int, home, away rawMatchup) *game {
	homeTeam := n.idx.teamName(home.RosterID)
	awayTeam := n.idx.teamName(away.RosterID)

	glog := n.log.WithFields(logrus.Fields{"week": week, "matchup_id": matchupID})
	homeRoster := n.roster(home, homeTeam, glog)
	awayRoster := n.roster(away, awayTeam, glog)

	return &game{
		Matchup: model.Matchup{
			LeagueID:      n.leagueID,
			Year:          n.year,
			Week:          week,
			MatchupID:     matchupID,
			HomeTeam:      homeTeam,
			AwayTeam:      awayTeam,
			HomeScore:     home.Points,
			AwayScore:     away.Points,
			HomeProjected: model.ProjectedTotal(homeRoster, homeTeam),
			AwayProjected: model.ProjectedTotal(awayRoster, awayTeam),
			Roster:        append(homeRoster, awayRoster...),
		},
		homeRoster: home.RosterID,
		awayRoster: away.RosterID,
	}
}

// roster builds one side's lineup. Sleeper fills empty starting slots with
// "0".
func (n *normalizer) roster(e rawMatchup, team string, log logrus.FieldLogger) []model.RosterEntry {
	starters := make(map[string]bool, len(e.Starters))
	ids := make([]string, 0, len(e.Players)+len(e.Starters))
	seen := make(map[string]bool, len(e.Players))

	for _, id := range e.Starters {
		if id == "" || id == "0" {
			continue
		}
		starters[id] = true
	}
	for _, id := range append(slices.Clone(e.Players), e.Starters...) {
		if id == "" || id == "0" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	result := make([]model.RosterEntry, 0, len(ids))
	for _, id := range ids {
		p, found := n.dir.Lookup(id)
		if !found {
			log.WithField("player", id).Debug("player not in directory")
			p = n.dir.Resolve(id)
		}
		result = append(result, model.RosterEntry{
			TeamName:   team,
			PlayerName: model.CleanPlayerName(p.Name),
			Position:   p.Position,
			NFLTeam:    p.Team,
			Points:     e.PlayersPoints[id],
			Projected:  e.PlayersProjected[id],
			Started:    starters[id],
		})
	}

	model.SortRoster(result)
	return result
}

// labelBrackets marks the matchups that were played as part of a playoff
// bracket. Bracket round r is played in week playoffStart+r-1.
func (n *normalizer) labelBrackets(games []*game, playoffStart int, bracket []rawBracketGame, bracketType string) {
	if len(bracket) == 0 {
		return
	}
	if playoffStart <= 0 {
		n.log.WithField("bracket", bracketType).Warn("league has no playoff start week, bracket ignored")
		return
	}

	for _, b := range bracket {
		if b.T1 == nil || b.T2 == nil || b.R <= 0 {
			continue
		}
		week := playoffStart + b.R - 1

		found := false
		for _, g := range games {
			if g.Week != week || !sameTeams(g, *b.T1, *b.T2) {
				continue
			}
			g.BracketType = model.Ptr(bracketType)
			g.Round = model.Ptr(fmt.Sprintf("Playoff Round %d", b.R))
			found = true
		}
		if !found {
			n.log.WithFields(logrus.Fields{
				"bracket": bracketType,
				"round":   b.R,
				"week":    week,
			}).Debug("no matchup found for bracket game")
		}
	}
}

func sameTeams(g *game, a, b int) bool {
	return (g.homeRoster == a && g.awayRoster == b) || (g.homeRoster == b && g.awayRoster == a)
}

func (n *normalizer) draft(picks []rawPick) []model.DraftPick {
	result := make([]model.DraftPick, 0, len(picks))
	for _, p := range picks {
		team := ""
		if p.RosterID != nil {
			team = n.idx.teamName(*p.RosterID)
		}
		if team == "" && p.PickedBy != "" {
			team = n.idx.teamForOwner(p.PickedBy)
		}

		info := n.dir.Resolve(p.PlayerID)
		name := strings.TrimSpace(p.Metadata.FirstName + " " + p.Metadata.LastName)
		if name == "" {
			name = info.Name
		}
		pos := p.Metadata.Position
		if pos == "" {
			pos = info.Position
		}
		nflTeam := p.Metadata.Team
		if nflTeam == "" {
			nflTeam = info.Team
		}

		result = append(result, model.DraftPick{
			LeagueID:    n.leagueID,
			Year:        n.year,
			Round:       p.Round,
			Pick:        p.DraftSlot,
			OverallPick: p.PickNo,
			Team:        team,
			PlayerName:  model.CleanPlayerName(name),
			Position:    pos,
			NFLTeam:     nflTeam,
		})
	}

	slices.SortStableFunc(result, func(a, b model.DraftPick) int {
		return cmp.Compare(a.OverallPick, b.OverallPick)
	})
	return result
}

func (n *normalizer) transactions(weeks map[string][]rawTransaction) []model.Transaction {
	result := make([]model.Transaction, 0)
	for _, txns := range weeks {
		for _, t := range txns {
			if t.Status != "" && t.Status != "complete" {
				continue
			}

			teams := make([]string, 0, len(t.RosterIDs))
			for _, id := range t.RosterIDs {
				if name := n.idx.teamName(id); name != "" {
					teams = append(teams, name)
				}
			}

			added := n.playerNames(t.Adds)
			dropped := n.playerNames(t.Drops)

			result = append(result, model.Transaction{
				LeagueID:       n.leagueID,
				Year:           n.year,
				Date:           time.UnixMilli(t.Created).UTC(),
				Type:           t.Type,
				Team:           strings.Join(teams, ", "),
				PlayersAdded:   added,
				PlayersDropped: dropped,
				Description:    describe(added, dropped),
			})
		}
	}

	slices.SortStableFunc(result, func(a, b model.Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Description, b.Description)
	})
	return result
}

func (n *normalizer) playerNames(ids map[string]int) []string {
	names := make([]string, 0, len(ids))
	for id := range ids {
		names = append(names, model.CleanPlayerName(n.dir.Resolve(id).Name))
	}
	slices.Sort(names)
	return names
}

func describe(added, dropped []string) string {
	parts := make([]string, 0, 2)
	if len(added) > 0 {
		parts = append(parts, "Added "+strings.Join(added, ", "))
	}
	if len(dropped) > 0 {
		parts = append(parts, "Dropped "+strings.Join(dropped, ", "))
	}
	return strings.Join(parts, "; ")
}

var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	time.DateTime,
	time.DateOnly,
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, f := range timeFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
