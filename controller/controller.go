package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Praneshv25/KMSFL-Data/analytics"
	"github.com/Praneshv25/KMSFL-Data/cache"
	"github.com/Praneshv25/KMSFL-Data/config"
	"github.com/Praneshv25/KMSFL-Data/db"
	"github.com/Praneshv25/KMSFL-Data/ingest"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/Praneshv25/KMSFL-Data/sleeper"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidArgument     = errors.New("invalid argument")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetSeasons(ctx context.Context) ([]model.SeasonSummary, error)
	GetTeams(ctx context.Context, year int) ([]model.Team, error)
	GetChampions(ctx context.Context) ([]analytics.Champion, error)
	// A week of 0 returns every week of the season.
	GetMatchups(ctx context.Context, year, week int) (*MatchupWeek, error)
	// The box score of one matchup, starters first.
	GetMatchupRoster(ctx context.Context, year, week, matchupID int) ([]model.RosterEntry, error)
	GetManagers(ctx context.Context) ([]analytics.ManagerSummary, error)
	GetManager(ctx context.Context, name string) (*analytics.ManagerDetail, error)
	GetDraft(ctx context.Context, year int) ([]model.DraftPick, error)
	GetTransactions(ctx context.Context, year int) ([]model.Transaction, error)
	GetRecords(ctx context.Context) ([]analytics.Record, error)
	GetHeadToHead(ctx context.Context, a, b string) (*analytics.HeadToHeadResult, error)
	GetRivalries(ctx context.Context, name string) ([]analytics.Rivalry, error)
	GetWeeklyResults(ctx context.Context, name string) ([]analytics.WeeklyResult, error)
	GetLuckRankings(ctx context.Context) ([]analytics.LuckRanking, error)
	// An empty manager returns every team's scores.
	GetWeeklyScores(ctx context.Context, year int, manager string) ([]analytics.WeeklyScore, error)
	GetIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error)

	// Normalize a raw season export and ingest it.
	IngestFile(ctx context.Context, platform model.Platform, path string) (*ingest.Result, error)
	IngestSeason(ctx context.Context, s *model.Season) (*ingest.Result, error)
	// Ingest every season export in dir. The platform of a file is chosen by
	// its espn_ or sleeper_ name prefix.
	IngestDir(ctx context.Context, dir string) ([]FileResult, error)
	// Download the player directory and save it. Returns the number of players.
	RefreshPlayerDirectory(ctx context.Context) (int, error)
	// Re-ingest dir on the cron schedule until shutdown is closed.
	RunScheduledIngest(schedule, dir string, shutdown chan bool, wg *sync.WaitGroup) error
}

type Options struct {
	Cache  cache.Cache
	League *config.League
	// Where the player directory is stored. When empty the directory is only
	// kept in memory.
	DirectoryPath string
	Log           logrus.FieldLogger
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	sleeper sleeper.Client
	cache   cache.Cache
	league  *config.League
	ingest  *ingest.Service
	log     logrus.FieldLogger

	locks *seasonLocks

	dirPath   string
	dirGroup  singleflight.Group
	dirMu     sync.Mutex
	dir       sleeper.Directory
	dirFailed time.Time
}

func New(clock clock.Clock, db db.DB, sleeper sleeper.Client, opts Options) (C, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNop()
	}
	if opts.League == nil {
		opts.League = config.DefaultLeague()
	}

	c := &controller{
		clock:   clock,
		db:      db,
		sleeper: sleeper,
		cache:   opts.Cache,
		league:  opts.League,
		ingest:  ingest.New(db, clock, opts.Log),
		log:     opts.Log.WithField("component", "controller"),
		locks:   &seasonLocks{locks: make(map[seasonKey]*sync.Mutex)},
		dirPath: opts.DirectoryPath,
	}
	return c, nil
}

type seasonKey struct {
	leagueID string
	year     int
}

// seasonLocks serializes ingestion of the same season. Different seasons
// don't share any natural keys and can be written concurrently.
type seasonLocks struct {
	mu    sync.Mutex
	locks map[seasonKey]*sync.Mutex
}

func (l *seasonLocks) lock(leagueID string, year int) func() {
	k := seasonKey{leagueID: leagueID, year: year}

	l.mu.Lock()
	m, found := l.locks[k]
	if !found {
		m = &sync.Mutex{}
		l.locks[k] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (c *controller) analyticsConfig() analytics.Config {
	return analytics.Config{
		PlayoffTeams:            c.league.PlayoffTeams(),
		FirstSeasonPlayoffTeams: c.league.FirstSeasonPlayoffTeams,
		DefaultPlayoffTeams:     c.league.DefaultPlayoffTeams,
	}
}

func (c *controller) invalidateCache(ctx context.Context) {
	if err := c.cache.Invalidate(ctx); err != nil {
		c.log.WithError(err).Warn("unable to invalidate cache")
	}
}
