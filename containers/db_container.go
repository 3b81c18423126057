package containers

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16.3-alpine"
	dbName        = "kmsfl"
	dbUser        = "kmsfl"
	dbPassword    = "secret"
	schemaFile    = "schema/schema.sql"
)

// DBContainer is a throwaway postgres with the league schema applied.
type DBContainer struct {
	container *postgres.PostgresContainer
	connStr   string
}

// NewDBContainer starts the container. The schema is found relative to the
// module root so it works from any package's tests.
func NewDBContainer() *DBContainer {
	ctx := context.Background()

	schema, err := findSchema()
	if err != nil {
		log.Fatalf("error locating %s: %v", schemaFile, err)
	}

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(schema),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	// The container has no TLS.
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		log.Fatalf("error getting postgres connection string: %v", err)
	}
	return &DBContainer{container: container, connStr: connStr}
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating postgres container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	return c.connStr
}

// findSchema walks up from the working directory to the directory holding
// go.mod.
func findSchema() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, schemaFile), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}
