package legacy

import (
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/sirupsen/logrus"
)

// entryShape identifies which format a roster entry was written in.
type entryShape int

const (
	// Explicit player_name, position, nfl_team and started fields.
	normalizedShape entryShape = iota
	// A combined "team pos" string (e.g. "Ten QB") plus a lineup slot.
	oldRosterShape
)

func (p *rawPlayer) shape() entryShape {
	if p.PlayerName != nil || p.Position != nil {
		return normalizedShape
	}
	return oldRosterShape
}

// matchupShape identifies how bench players are stored for a matchup.
type matchupShape int

const (
	// Bench players are mixed into the roster lists and identified by slot.
	inlineBenchShape matchupShape = iota
	// Bench players are listed separately in home_bench / away_bench.
	benchArrayShape
)

func (m *rawMatchup) shape() matchupShape {
	if m.HomeBench != nil || m.AwayBench != nil {
		return benchArrayShape
	}
	return inlineBenchShape
}

// upgradeMatchup rewrites a matchup into the normalized shape: every roster
// entry has explicit fields and bench arrays are merged into the rosters,
// starters first. Running it on an already upgraded matchup changes nothing.
func upgradeMatchup(m rawMatchup, log logrus.FieldLogger) rawMatchup {
	switch m.shape() {
	case benchArrayShape:
		m.HomeRoster = append(upgradeEntries(m.HomeRoster, false, log), upgradeEntries(m.HomeBench, true, log)...)
		m.AwayRoster = append(upgradeEntries(m.AwayRoster, false, log), upgradeEntries(m.AwayBench, true, log)...)
		m.HomeBench = nil
		m.AwayBench = nil
	case inlineBenchShape:
		m.HomeRoster = upgradeEntries(m.HomeRoster, false, log)
		m.AwayRoster = upgradeEntries(m.AwayRoster, false, log)
	}
	return m
}

func upgradeEntries(entries []rawPlayer, fromBench bool, log logrus.FieldLogger) []rawPlayer {
	if entries == nil {
		return nil
	}
	result := make([]rawPlayer, 0, len(entries))
	for _, e := range entries {
		result = append(result, upgradeEntry(e, fromBench, log))
	}
	return result
}

func upgradeEntry(p rawPlayer, fromBench bool, log logrus.FieldLogger) rawPlayer {
	switch p.shape() {
	case normalizedShape:
		started := true
		if p.Started != nil {
			started = *p.Started
		} else if strings.EqualFold(p.Slot, string(model.POS_BENCH)) {
			started = false
		}
		if fromBench {
			started = false
		}
		p.Started = &started
		return p

	default:
		name := strings.TrimSpace(p.Player)
		nflTeam, position := splitTeamPos(p.TeamPos, p.Slot, name, log)
		started := !fromBench && !strings.EqualFold(p.Slot, string(model.POS_BENCH))

		points := p.Points
		if !points.Valid() {
			points = p.FPts
		}
		projected := p.Projected
		if !projected.Valid() {
			projected = p.Proj
		}

		return rawPlayer{
			PlayerName: &name,
			Position:   &position,
			NFLTeam:    nflTeam,
			Points:     points,
			Projected:  projected,
			Started:    &started,
			Slot:       p.Slot,
		}
	}
}

// splitTeamPos breaks "Ten QB" into ("Ten", "QB"). A missing position token
// falls back to the lineup slot, and anything else unparsable falls back to
// the slot with no team.
func splitTeamPos(teamPos *string, slot, player string, log logrus.FieldLogger) (string, string) {
	var fields []string
	if teamPos != nil {
		fields = strings.Fields(*teamPos)
	}

	switch len(fields) {
	case 2:
		return fields[0], fields[1]
	case 1:
		return fields[0], slot
	default:
		raw := ""
		if teamPos != nil {
			raw = *teamPos
		}
		log.WithFields(logrus.Fields{
			"player":   player,
			"team_pos": raw,
			"slot":     slot,
		}).Warn("unable to parse team and position, using slot")
		return "", slot
	}
}

func toRosterEntries(entries []rawPlayer, team string, log logrus.FieldLogger) []model.RosterEntry {
	result := make([]model.RosterEntry, 0, len(entries))
	for _, e := range entries {
		name := ""
		if e.PlayerName != nil {
			name = *e.PlayerName
		}
		pos := ""
		if e.Position != nil {
			pos = *e.Position
		}
		result = append(result, model.RosterEntry{
			TeamName:   team,
			PlayerName: name,
			Position:   pos,
			NFLTeam:    e.NFLTeam,
			Points:     checkedFloat(e.Points, "points", name, log),
			Projected:  checkedFloat(e.Projected, "projected", name, log),
			Started:    e.Started != nil && *e.Started,
		})
	}
	return result
}

func checkedFloat(n number, field, subject string, log logrus.FieldLogger) float64 {
	if n.Malformed() {
		log.WithFields(logrus.Fields{
			"field":   field,
			"value":   n.raw,
			"subject": subject,
		}).Warn("malformed number, using 0")
	}
	return n.Float()
}
