// Package dbtest provides a migrated PostgreSQL database for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/chirp/internal/config"
	"github.com/fkhayef/chirp/internal/database"
)

// EnvURL names the variable holding the test database URL.
const EnvURL = "CHIRP_TEST_DATABASE_URL"

// Open connects to the database named by CHIRP_TEST_DATABASE_URL, migrates it
// and empties every table. The test is skipped when the variable is unset.
//
// Packages share the database, so run them one at a time: go test -p 1 ./...
func Open(t testing.TB) *sql.DB {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set, skipping database test", EnvURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, url, &logger))

	cfg := config.Defaults()
	cfg.DatabaseURL = url
	cfg.DBMaxOpenConns = 4
	cfg.DBMaxIdleConns = 1

	db, err := database.NewPostgresConnection(ctx, &cfg)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `TRUNCATE likes, retweets, posts, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}
