// Package dbtest opens a migrated PostgreSQL database for tests.
//
// Tests using it are skipped unless PG_DSN is set. The helper is
// destructive: it empties the college tables before returning.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/college-records/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Open connects to PG_DSN, applies the embedded schema and truncates the
// college tables.
func Open(t *testing.T) *database.Database {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set; skipping Postgres tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "connect postgres")
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx), "ping postgres")

	logger := zerolog.Nop()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err, "acquire conn")
	defer conn.Release()

	require.NoError(t, database.MigrateConn(ctx, &logger, conn.Conn()), "apply schema")

	_, err = conn.Exec(ctx, `TRUNCATE marks, students, subjects RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "truncate tables")

	return database.Wrap(pool, &logger)
}
