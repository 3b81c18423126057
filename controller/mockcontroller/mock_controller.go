package mockcontroller

import (
	"context"
	"sync"

	"github.com/Praneshv25/KMSFL-Data/analytics"
	"github.com/Praneshv25/KMSFL-Data/controller"
	"github.com/Praneshv25/KMSFL-Data/ingest"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) GetSeasons(ctx context.Context) ([]model.SeasonSummary, error) {
	args := c.Called(ctx)
	return get[[]model.SeasonSummary](args), args.Error(1)
}

func (c *C) GetTeams(ctx context.Context, year int) ([]model.Team, error) {
	args := c.Called(ctx, year)
	return get[[]model.Team](args), args.Error(1)
}

func (c *C) GetChampions(ctx context.Context) ([]analytics.Champion, error) {
	args := c.Called(ctx)
	return get[[]analytics.Champion](args), args.Error(1)
}

func (c *C) GetMatchups(ctx context.Context, year, week int) (*controller.MatchupWeek, error) {
	args := c.Called(ctx, year, week)
	return get[*controller.MatchupWeek](args), args.Error(1)
}

func (c *C) GetMatchupRoster(ctx context.Context, year, week, matchupID int) ([]model.RosterEntry, error) {
	args := c.Called(ctx, year, week, matchupID)
	return get[[]model.RosterEntry](args), args.Error(1)
}

func (c *C) GetManagers(ctx context.Context) ([]analytics.ManagerSummary, error) {
	args := c.Called(ctx)
	return get[[]analytics.ManagerSummary](args), args.Error(1)
}

func (c *C) GetManager(ctx context.Context, name string) (*analytics.ManagerDetail, error) {
	args := c.Called(ctx, name)
	return get[*analytics.ManagerDetail](args), args.Error(1)
}

func (c *C) GetDraft(ctx context.Context, year int) ([]model.DraftPick, error) {
	args := c.Called(ctx, year)
	return get[[]model.DraftPick](args), args.Error(1)
}

func (c *C) GetTransactions(ctx context.Context, year int) ([]model.Transaction, error) {
	args := c.Called(ctx, year)
	return get[[]model.Transaction](args), args.Error(1)
}

func (c *C) GetRecords(ctx context.Context) ([]analytics.Record, error) {
	args := c.Called(ctx)
	return get[[]analytics.Record](args), args.Error(1)
}

func (c *C) GetHeadToHead(ctx context.Context, a, b string) (*analytics.HeadToHeadResult, error) {
	args := c.Called(ctx, a, b)
	return get[*analytics.HeadToHeadResult](args), args.Error(1)
}

func (c *C) GetRivalries(ctx context.Context, name string) ([]analytics.Rivalry, error) {
	args := c.Called(ctx, name)
	return get[[]analytics.Rivalry](args), args.Error(1)
}

func (c *C) GetWeeklyResults(ctx context.Context, name string) ([]analytics.WeeklyResult, error) {
	args := c.Called(ctx, name)
	return get[[]analytics.WeeklyResult](args), args.Error(1)
}

func (c *C) GetLuckRankings(ctx context.Context) ([]analytics.LuckRanking, error) {
	args := c.Called(ctx)
	return get[[]analytics.LuckRanking](args), args.Error(1)
}

func (c *C) GetWeeklyScores(ctx context.Context, year int, manager string) ([]analytics.WeeklyScore, error) {
	args := c.Called(ctx, year, manager)
	return get[[]analytics.WeeklyScore](args), args.Error(1)
}

func (c *C) GetIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	args := c.Called(ctx, limit)
	return get[[]model.IngestRun](args), args.Error(1)
}

func (c *C) IngestFile(ctx context.Context, platform model.Platform, path string) (*ingest.Result, error) {
	args := c.Called(ctx, platform, path)
	return get[*ingest.Result](args), args.Error(1)
}

func (c *C) IngestSeason(ctx context.Context, s *model.Season) (*ingest.Result, error) {
	args := c.Called(ctx, s)
	return get[*ingest.Result](args), args.Error(1)
}

func (c *C) IngestDir(ctx context.Context, dir string) ([]controller.FileResult, error) {
	args := c.Called(ctx, dir)
	return get[[]controller.FileResult](args), args.Error(1)
}

func (c *C) RefreshPlayerDirectory(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) RunScheduledIngest(schedule, dir string, shutdown chan bool, wg *sync.WaitGroup) error {
	defer wg.Done()
	args := c.Called(schedule, dir, shutdown, wg)
	return args.Error(0)
}

// get returns the first return value, or the zero value when it was set to nil.
func get[T any](args mock.Arguments) T {
	var res T
	if args.Get(0) != nil {
		res = args.Get(0).(T)
	}
	return res
}
