package testutils

import (
	"path/filepath"

	"github.com/itbasis/go-clock"
)

// TestController holds the fakes a controller needs in tests.
type TestController struct {
	Clock       *clock.Mock
	fakeSleeper *FakeSleeperServer
	dir         string
}

func (c *TestController) Close() {
	c.fakeSleeper.Close()
}

func (c *TestController) SleeperURL() string {
	return c.fakeSleeper.URL()
}

// SleeperRequests is the number of player dumps the fake server handed out.
func (c *TestController) SleeperRequests() int {
	return c.fakeSleeper.Requests()
}

// DirectoryPath is where the player directory should be saved. It lives in
// a directory owned by the test.
func (c *TestController) DirectoryPath() string {
	return filepath.Join(c.dir, "sleeper_players.json")
}

func NewTestController(db *TestDB, dir string) *TestController {
	return &TestController{
		Clock:       db.Clock,
		fakeSleeper: NewFakeSleeperServer(),
		dir:         dir,
	}
}
