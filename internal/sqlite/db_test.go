package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations(context.Background())
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	for _, table := range []string{"projects", "matches", "activity_log", "api_keys"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

func TestMigrationsAreRepeatable(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations(context.Background()))
}

func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

func TestMatchesTableConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insert := `INSERT INTO matches (user_id, id, timestamp, requirements, status, sender_type, revision, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, ?, ?, ?, 1, CURRENT_TIMESTAMP)`

	_, err := db.ExecContext(ctx, insert, "user1", "m1", "Booking site", "draft", "Agency")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "user1", "m2", "Booking site", "archived", "Agency")
	require.Error(t, err, "should fail with invalid status")

	_, err = db.ExecContext(ctx, insert, "user1", "m3", "Booking site", "draft", "Robot")
	require.Error(t, err, "should fail with invalid sender type")

	_, err = db.ExecContext(ctx, insert, "user1", "m1", "Booking site", "draft", "Agency")
	require.Error(t, err, "ids are unique per user")

	_, err = db.ExecContext(ctx, insert, "user2", "m1", "Booking site", "draft", "Agency")
	require.NoError(t, err, "the same id may exist for another user")
}
