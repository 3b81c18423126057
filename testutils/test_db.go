package testutils

import (
	"context"
	"log"
	"time"

	"github.com/Praneshv25/KMSFL-Data/containers"
	"github.com/Praneshv25/KMSFL-Data/db"
	"github.com/itbasis/go-clock"
)

// Start is the time the mock clock of every TestDB starts at.
var Start = time.Date(2025, time.September, 9, 12, 0, 0, 0, time.UTC)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(Start)

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		container.Shutdown()
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.DB.Close()
	db.container.Shutdown()
}
