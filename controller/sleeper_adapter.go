package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/Praneshv25/KMSFL-Data/sleeper"
	"github.com/sirupsen/logrus"
)

// sleeperAdapter reads modern platform exports. Player ids are resolved with
// the player directory, which is loaded on first use.
type sleeperAdapter struct {
	c *controller
}

func (a *sleeperAdapter) normalize(ctx context.Context, r io.Reader) (*model.Season, error) {
	raw, err := sleeper.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing modern export: %w", err)
	}

	dir := a.c.directory(ctx)
	log := a.c.log.WithFields(logrus.Fields{
		"platform": model.PlatformModern,
		"players":  len(dir),
	})
	return sleeper.NormalizeWithLog(raw, dir, log)
}
