package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Praneshv25/KMSFL-Data/db"
	"github.com/Praneshv25/KMSFL-Data/ingest"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	legacyFilePrefix  = "espn_"
	modernFilePrefix  = "sleeper_"
	playerDumpFile    = "sleeper_players.json"
	maxParallelIngest = 4
)

// FileResult is the outcome of ingesting one file of a directory.
type FileResult struct {
	Path     string         `json:"path"`
	Platform model.Platform `json:"platform"`
	Result   *ingest.Result `json:"result,omitempty"`
	Err      error          `json:"-"`
}

func (c *controller) IngestFile(ctx context.Context, platform model.Platform, path string) (*ingest.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	s, err := getSourceAdapter(platform, c).normalize(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error normalizing %s: %w", path, err)
	}
	return c.IngestSeason(ctx, s)
}

func (c *controller) IngestSeason(ctx context.Context, s *model.Season) (*ingest.Result, error) {
	if s == nil {
		return nil, errors.New("season must be provided")
	}
	if !model.IsPlatformSupported(string(s.Platform)) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s.Platform)
	}

	unlock := c.locks.lock(s.LeagueID, s.Year)
	defer unlock()

	result, err := c.ingest.Ingest(ctx, s)
	if result != nil && result.Inserted+result.Updated > 0 {
		c.invalidateCache(ctx)
	}
	return result, err
}

func (c *controller) IngestDir(ctx context.Context, dir string) ([]FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", dir, err)
	}

	skip := []string{playerDumpFile}
	if c.dirPath != "" {
		skip = append(skip, filepath.Base(c.dirPath))
	}

	files := make([]FileResult, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" || slices.Contains(skip, name) {
			continue
		}
		platform, ok := platformForFile(name)
		if !ok {
			c.log.WithField("file", name).Debug("skipping file without a platform prefix")
			continue
		}
		files = append(files, FileResult{Path: filepath.Join(dir, name), Platform: platform})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelIngest)
	for i := range files {
		g.Go(func() error {
			f := &files[i]
			f.Result, f.Err = c.IngestFile(gctx, f.Platform, f.Path)
			if f.Err != nil {
				c.log.WithError(f.Err).WithField("file", f.Path).Warn("ingest failed")
			}
			// Without a store the remaining files can't succeed either.
			if db.IsUnavailable(f.Err) {
				return f.Err
			}
			return nil
		})
	}
	return files, g.Wait()
}

func platformForFile(name string) (model.Platform, bool) {
	switch {
	case strings.HasPrefix(name, legacyFilePrefix):
		return model.PlatformLegacy, true
	case strings.HasPrefix(name, modernFilePrefix):
		return model.PlatformModern, true
	default:
		return "", false
	}
}

func (c *controller) RunScheduledIngest(schedule, dir string, shutdown chan bool, wg *sync.WaitGroup) error {
	defer wg.Done()

	scheduler := cron.New(cron.WithLogger(cron.PrintfLogger(c.log)))
	_, err := scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		results, err := c.IngestDir(ctx, dir)
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		entry := c.log.WithFields(logrus.Fields{
			"dir":    dir,
			"files":  len(results),
			"failed": failed,
		})
		if err != nil {
			entry.WithError(err).Error("scheduled ingest aborted")
			return
		}
		entry.Info("scheduled ingest finished")
	})
	if err != nil {
		return fmt.Errorf("invalid ingest schedule %q: %w", schedule, err)
	}

	scheduler.Start()
	<-shutdown
	<-scheduler.Stop().Done()
	return nil
}
