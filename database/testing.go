package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"fieldlog/config"
)

var (
	testDB *DB
)

// GetTestDB returns the shared test database connection.
// Available after TestMain has run and SetupTestDB succeeded.
// Returns nil if called before TestMain.
func GetTestDB() *DB {
	return testDB
}

// SetupTestDB creates a test database connection and runs migrations.
// Should be called once in TestMain, not in individual tests.
// Migrations are embedded inline (not read from files) for test isolation.
func SetupTestDB(dbURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, config.DatabaseConfig{URL: dbURL, MaxConns: 5, MinConns: 1}, zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := runTestMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runTestMigrations(db *DB) error {
	ctx := context.Background()

	migrations := []string{
		`
		CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(200) NOT NULL,
			location VARCHAR(300),
			owner_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_projects_owner_created ON projects(owner_id, created_at);
		`,
		`
		CREATE TABLE IF NOT EXISTS daily_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			created_by TEXT NOT NULL,
			log_date DATE NOT NULL,
			events_json TEXT NOT NULL DEFAULT '[]',
			weather_json TEXT NOT NULL DEFAULT '{}',
			subcontractors_json TEXT NOT NULL DEFAULT '[]',
			photo_urls_json TEXT NOT NULL DEFAULT '[]',
			issues_json TEXT NOT NULL DEFAULT '[]',
			safety_json TEXT NOT NULL DEFAULT '[]',
			labor_json TEXT NOT NULL DEFAULT '[]',
			equipment_json TEXT NOT NULL DEFAULT '[]',
			deliveries_json TEXT NOT NULL DEFAULT '[]',
			inspections_json TEXT NOT NULL DEFAULT '[]',
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT daily_logs_project_date_key UNIQUE (project_id, log_date)
		);
		`,
	}

	for _, migration := range migrations {
		_, err := db.Pool.Exec(ctx, migration)
		if err != nil {
			return err
		}
	}

	return nil
}

// CleanupTestDB truncates all tables for a fresh test state.
// Call this at the start of each integration test.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, "TRUNCATE TABLE daily_logs, projects CASCADE")
	require.NoError(t, err)
}

// TeardownTestDB closes the test database connection.
// Safe to call with nil DB (no-op).
func TeardownTestDB(db *DB) {
	if db != nil {
		db.Close()
	}
}
