package legacy

import (
	"cmp"
	"slices"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/sirupsen/logrus"
)

type pairKey struct {
	a, b string
}

func newPairKey(home, away string) pairKey {
	if away < home {
		home, away = away, home
	}
	return pairKey{a: home, b: away}
}

// applyTwoWeekRounds groups the matchups of each configured two-week round
// into a model.PlayoffRound and writes the round's projection back over the
// per-week rows, so every week carries the round label and aggregate totals.
func applyTwoWeekRounds(matchups []model.Matchup, rounds []TwoWeekRound, log logrus.FieldLogger) []model.Matchup {
	for _, tr := range rounds {
		groups := make(map[pairKey][]int)
		order := make([]pairKey, 0)

		for i, m := range matchups {
			if !slices.Contains(tr.Weeks, m.Week) {
				continue
			}
			k := newPairKey(m.HomeTeam, m.AwayTeam)
			if _, found := groups[k]; !found {
				order = append(order, k)
			}
			groups[k] = append(groups[k], i)
		}

		for _, k := range order {
			idx := groups[k]
			slices.SortFunc(idx, func(a, b int) int {
				return cmp.Compare(matchups[a].Week, matchups[b].Week)
			})

			if len(idx) != len(tr.Weeks) {
				log.WithFields(logrus.Fields{
					"round": tr.String(),
					"teams": []string{k.a, k.b},
					"games": len(idx),
				}).Warn("two week round is incomplete, totals only cover the weeks present")
			}

			round := buildRound(matchups, idx, tr.Label)
			for j, m := range round.Matchups() {
				matchups[idx[j]] = m
			}
		}
	}
	return matchups
}

func buildRound(matchups []model.Matchup, idx []int, label string) *model.PlayoffRound {
	first := matchups[idx[0]]

	round := &model.PlayoffRound{
		Year:        first.Year,
		Label:       label,
		BracketType: first.BracketType,
		HomeTeam:    first.HomeTeam,
		AwayTeam:    first.AwayTeam,
		Games:       make([]model.Matchup, 0, len(idx)),
	}
	if first.Round != nil {
		round.Label = *first.Round
	}

	for _, i := range idx {
		round.Games = append(round.Games, matchups[i])
	}

	if first.HomeTotal != nil && first.AwayTotal != nil {
		round.HomeTotal = *first.HomeTotal
		round.AwayTotal = *first.AwayTotal
	} else {
		for _, g := range round.Games {
			home, away, _, _ := g.Side(round.HomeTeam)
			round.HomeTotal += home
			round.AwayTotal += away
		}
	}

	return round
}
