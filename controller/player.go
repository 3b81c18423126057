package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Praneshv25/KMSFL-Data/sleeper"
	"github.com/sirupsen/logrus"
)

// How long a failed directory download is remembered before ingestion tries
// again.
const directoryRetry = time.Hour

// RefreshPlayerDirectory downloads the full player dump. The file on disk is
// only replaced once the new dump has been parsed successfully.
func (c *controller) RefreshPlayerDirectory(ctx context.Context) (int, error) {
	if c.sleeper == nil {
		return 0, errors.New("no sleeper client configured")
	}
	start := c.clock.Now()

	if c.dirPath == "" {
		dir, err := c.sleeper.LoadDirectory(ctx)
		if err != nil {
			return 0, fmt.Errorf("error loading player directory: %w", err)
		}
		c.setDirectory(dir)
		return len(dir), nil
	}

	if err := os.MkdirAll(filepath.Dir(c.dirPath), 0o755); err != nil {
		return 0, fmt.Errorf("error creating directory for %s: %w", c.dirPath, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.dirPath), ".players-*.json")
	if err != nil {
		return 0, fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := c.sleeper.DownloadPlayers(ctx, tmp); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("error downloading players: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("error writing players: %w", err)
	}

	dir, err := readDirectory(tmp.Name())
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), c.dirPath); err != nil {
		return 0, fmt.Errorf("error saving player directory: %w", err)
	}
	c.setDirectory(dir)

	c.log.WithFields(logrus.Fields{
		"players":  len(dir),
		"path":     c.dirPath,
		"duration": c.clock.Now().Sub(start),
	}).Info("player directory refreshed")
	return len(dir), nil
}

func (c *controller) setDirectory(dir sleeper.Directory) {
	c.dirMu.Lock()
	defer c.dirMu.Unlock()
	c.dir = dir
	c.dirFailed = time.Time{}
}

func (c *controller) loadedDirectory() sleeper.Directory {
	c.dirMu.Lock()
	defer c.dirMu.Unlock()
	return c.dir
}

// directory returns the player directory, reading the saved copy or
// downloading it the first time it's needed. Concurrent callers share one
// download and a failed download isn't retried for directoryRetry. An
// unavailable directory yields an empty one so that ingestion still succeeds
// with unresolved player ids.
func (c *controller) directory(ctx context.Context) sleeper.Directory {
	if dir := c.loadedDirectory(); dir != nil {
		return dir
	}

	v, _, _ := c.dirGroup.Do("directory", func() (any, error) {
		if dir := c.loadedDirectory(); dir != nil {
			return dir, nil
		}

		if c.dirPath != "" {
			dir, err := readDirectory(c.dirPath)
			if err == nil {
				c.setDirectory(dir)
				return dir, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				c.log.WithError(err).Warn("unable to read saved player directory")
			}
		}

		c.dirMu.Lock()
		failed := c.dirFailed
		c.dirMu.Unlock()
		if !failed.IsZero() && c.clock.Now().Sub(failed) < directoryRetry {
			return sleeper.Directory{}, nil
		}

		if _, err := c.RefreshPlayerDirectory(ctx); err != nil {
			c.log.WithError(err).Warn("player directory unavailable, player ids will not be resolved")
			c.dirMu.Lock()
			c.dirFailed = c.clock.Now()
			c.dirMu.Unlock()
			return sleeper.Directory{}, nil
		}
		return c.loadedDirectory(), nil
	})
	return v.(sleeper.Directory)
}

func readDirectory(path string) (sleeper.Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening player directory: %w", err)
	}
	defer f.Close()

	return sleeper.LoadDirectory(f)
}
