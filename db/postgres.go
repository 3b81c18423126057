package db

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound error = errors.New("not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

func (db *postgresDB) now() time.Time {
	return db.clock.Now().UTC()
}

// IsUnavailable reports errors that mean the database can't be reached at
// all, as opposed to a problem with a single statement.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return true
	}
	// pgxpool doesn't export its closed pool error.
	return strings.Contains(err.Error(), "closed pool")
}

// IsConstraintViolation reports an integrity constraint failure, e.g. a
// foreign key or check constraint.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23")
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func optionalTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func optionalFloat(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}

func floatPtr(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	return model.Ptr(f.Float64)
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return model.Ptr(t.String)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type dbPlatform struct {
	platform model.Platform
}

func (p *dbPlatform) ScanText(v pgtype.Text) error {
	if !model.IsPlatformSupported(v.String) {
		return errors.New("unsupported platform in database: " + v.String)
	}
	p.platform = model.Platform(v.String)
	return nil
}

func (p *dbPlatform) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.platform),
		Valid:  true,
	}, nil
}
