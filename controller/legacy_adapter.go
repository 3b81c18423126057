package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/Praneshv25/KMSFL-Data/legacy"
	"github.com/Praneshv25/KMSFL-Data/model"
)

type legacyAdapter struct {
	c *controller
}

func (a *legacyAdapter) normalize(ctx context.Context, r io.Reader) (*model.Season, error) {
	raw, err := legacy.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing legacy export: %w", err)
	}
	return legacy.Normalize(raw, a.config(raw.Year()))
}

// config carries the league file's settings for one season into the adapter.
func (a *legacyAdapter) config(year int) legacy.Config {
	cfg := legacy.Config{
		LeagueID: a.c.league.LeagueID,
		Log:      a.c.log,
	}
	settings, _ := a.c.league.Season(year)
	for _, r := range settings.TwoWeekRounds {
		cfg.TwoWeekRounds = append(cfg.TwoWeekRounds, legacy.TwoWeekRound{
			Label: r.Label,
			Weeks: r.Weeks,
		})
	}
	return cfg
}
