package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/Praneshv25/KMSFL-Data/sleeper"
	"github.com/Praneshv25/KMSFL-Data/testutils"
	"github.com/sirupsen/logrus/hooks/test"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	code := m.Run()
	testDB.Shutdown()
	os.Exit(code)
}

// newTestController builds a controller on the shared test database. The
// player directory is saved in a temp dir of the test.
func newTestController(t *testing.T) (C, *testutils.TestController) {
	t.Helper()

	testCtrl := testutils.NewTestController(testDB, t.TempDir())
	t.Cleanup(testCtrl.Close)

	log, _ := test.NewNullLogger()
	ctrl, err := New(testCtrl.Clock, testDB.DB, sleeper.NewForTest(testCtrl.SleeperURL()), Options{
		DirectoryPath: testCtrl.DirectoryPath(),
		Log:           log,
	})
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return ctrl, testCtrl
}

// memCache is an in-process cache.Cache for tests.
type memCache struct {
	mu     sync.Mutex
	values map[string][]byte
	hits   int
	gen    int64
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, found := c.values[key]
	if !found {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = b
	return nil
}

func (c *memCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	clear(c.values)
	return nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
