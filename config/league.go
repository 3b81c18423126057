package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	defaultFirstSeasonPlayoffTeams = 4
	defaultPlayoffTeams            = 6
)

// League holds the per-season rules that the raw exports don't carry.
type League struct {
	LeagueID                string           `yaml:"league_id"`
	FirstSeasonPlayoffTeams int              `yaml:"first_season_playoff_teams"`
	DefaultPlayoffTeams     int              `yaml:"default_playoff_teams"`
	Seasons                 []SeasonSettings `yaml:"seasons"`
}

type SeasonSettings struct {
	Year          int            `yaml:"year"`
	PlayoffTeams  int            `yaml:"playoff_teams"`
	TwoWeekRounds []TwoWeekRound `yaml:"two_week_rounds"`
}

type TwoWeekRound struct {
	Label string `yaml:"label"`
	Weeks []int  `yaml:"weeks"`
}

func DefaultLeague() *League {
	return &League{
		FirstSeasonPlayoffTeams: defaultFirstSeasonPlayoffTeams,
		DefaultPlayoffTeams:     defaultPlayoffTeams,
	}
}

// LoadLeague reads the league settings file. A missing file yields the
// defaults.
func LoadLeague(path string) (*League, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultLeague(), nil
		}
		return nil, fmt.Errorf("error opening league config: %w", err)
	}
	defer f.Close()

	return ParseLeague(f)
}

func ParseLeague(r io.Reader) (*League, error) {
	l := DefaultLeague()
	if err := yaml.NewDecoder(r).Decode(l); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing league config: %w", err)
	}

	if l.FirstSeasonPlayoffTeams <= 0 {
		l.FirstSeasonPlayoffTeams = defaultFirstSeasonPlayoffTeams
	}
	if l.DefaultPlayoffTeams <= 0 {
		l.DefaultPlayoffTeams = defaultPlayoffTeams
	}

	for _, s := range l.Seasons {
		for _, r := range s.TwoWeekRounds {
			if len(r.Weeks) != 2 {
				return nil, fmt.Errorf("two week round %q in %d must list exactly 2 weeks, got %v", r.Label, s.Year, r.Weeks)
			}
		}
	}
	return l, nil
}

func (l *League) Season(year int) (SeasonSettings, bool) {
	idx := slices.IndexFunc(l.Seasons, func(s SeasonSettings) bool { return s.Year == year })
	if idx < 0 {
		return SeasonSettings{Year: year}, false
	}
	return l.Seasons[idx], true
}

// PlayoffTeams returns the explicitly configured playoff cutoffs keyed by year.
func (l *League) PlayoffTeams() map[int]int {
	result := make(map[int]int)
	for _, s := range l.Seasons {
		if s.PlayoffTeams > 0 {
			result[s.Year] = s.PlayoffTeams
		}
	}
	return result
}
