package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Praneshv25/KMSFL-Data/cache"
	"github.com/Praneshv25/KMSFL-Data/config"
	"github.com/Praneshv25/KMSFL-Data/controller"
	"github.com/Praneshv25/KMSFL-Data/db"
	"github.com/Praneshv25/KMSFL-Data/ingest"
	"github.com/Praneshv25/KMSFL-Data/logging"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/Praneshv25/KMSFL-Data/sleeper"
	"github.com/Praneshv25/KMSFL-Data/web"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds everything a command needs. close releases it.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    db.DB
	cache cache.Cache
	ctrl  controller.C
}

func setup(ctx context.Context, directoryPath string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	league, err := config.LoadLeague(cfg.LeagueConfig)
	if err != nil {
		return nil, err
	}

	clock := clock.New()
	store, err := db.New(ctx, cfg.PostgresConnString, clock)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to DB: %w", err)
	}

	a := &app{cfg: cfg, log: log, db: store, cache: cache.NewNop()}
	if cfg.RedisURL != "" {
		c, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			// The cache is optional, queries go straight to the store without it.
			log.WithError(err).Warn("redis unavailable, running without a cache")
		} else {
			a.cache = c
		}
	}

	if directoryPath == "" {
		directoryPath = cfg.PlayerDirectory
	}
	a.ctrl, err = controller.New(clock, store, sleeper.New(cfg.SleeperURL), controller.Options{
		Cache:         a.cache,
		League:        league,
		DirectoryPath: directoryPath,
		Log:           log,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("error creating a new controller: %w", err)
	}
	return a, nil
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.log.WithError(err).Warn("error closing cache")
	}
	a.db.Close()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and re-ingest DATA_DIR on INGEST_SCHEDULE",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer a.close()

			server, err := web.NewServer(a.cfg.Port, a.ctrl, a.log)
			if err != nil {
				return fmt.Errorf("error creating new web server: %w", err)
			}

			shutdown := make(chan bool)
			stop := sync.OnceFunc(func() { close(shutdown) })
			wg := &sync.WaitGroup{}

			// Setup a handler to catch ctrl-c signals and properly shutdown everything.
			intChannel := make(chan os.Signal, 2)
			signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-intChannel
				stop()

				if err := waitTimeout(wg, 10*time.Second); err != nil {
					a.log.Error("timed out waiting for proper shutdown")
					os.Exit(255)
				}
			}()

			if a.cfg.IngestSchedule != "" {
				wg.Add(1)
				go func() {
					err := a.ctrl.RunScheduledIngest(a.cfg.IngestSchedule, a.cfg.DataDir, shutdown, wg)
					if err != nil {
						a.log.WithError(err).Error("scheduled ingest not started")
					}
				}()
			}

			// Start the web server
			serveErr := make(chan error, 1)
			wg.Add(1)
			go func() {
				err := server.ListenAndServe(shutdown, wg)
				if err != nil {
					stop()
				}
				serveErr <- err
			}()

			// Wait for everything to stop.
			wg.Wait()
			a.log.Info("server shutdown")
			return <-serveErr
		},
	}
}

func ingestCmd() *cobra.Command {
	var platform, file, dir string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a season export, or every export in a directory",
		Example: `  kmsfl ingest --platform legacy --file data/espn_2019.json
  kmsfl ingest --dir data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" && !model.IsPlatformSupported(platform) {
				return fmt.Errorf("%w: %q, expected legacy or modern", controller.ErrUnsupportedPlatform, platform)
			}

			a, err := setup(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer a.close()

			if file != "" {
				res, err := a.ctrl.IngestFile(cmd.Context(), model.Platform(platform), file)
				logResult(a.log, file, res, err)
				return err
			}

			results, err := a.ctrl.IngestDir(cmd.Context(), dir)
			failed := 0
			for _, r := range results {
				logResult(a.log, r.Path, r.Result, r.Err)
				if r.Err != nil {
					failed++
				}
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to ingest", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "", "Platform of --file: legacy or modern")
	cmd.Flags().StringVar(&file, "file", "", "Season export to ingest")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of espn_*.json and sleeper_*.json exports")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")
	cmd.MarkFlagsOneRequired("file", "dir")
	cmd.MarkFlagsRequiredTogether("file", "platform")
	return cmd
}

func logResult(log logrus.FieldLogger, path string, res *ingest.Result, err error) {
	entry := log.WithField("file", path)
	if res != nil {
		entry = entry.WithFields(logrus.Fields{
			"run":      res.RunID,
			"inserted": res.Inserted,
			"updated":  res.Updated,
			"errors":   res.Errors,
		})
		for _, rowErr := range res.RowErrors {
			entry.WithError(rowErr).Warn("row skipped")
		}
	}

	switch {
	case errors.Is(err, controller.ErrUnsupportedPlatform):
		entry.WithError(err).Error("unsupported platform")
	case err != nil:
		entry.WithError(err).Error("ingest failed")
	default:
		entry.Info("ingested")
	}
}

func directoryCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Download the Sleeper player directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), out)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.ctrl.RefreshPlayerDirectory(cmd.Context())
			if err != nil {
				return err
			}
			a.log.WithField("players", n).Info("player directory saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Where to save the directory (default PLAYER_DIRECTORY)")
	return cmd
}
