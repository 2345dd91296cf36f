package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named by TEST_MYSQL_DSN, applies
// migrations and truncates every table. Tests that need a live database are
// skipped when the variable is unset.
func setupTestDB(t *testing.T) (*MYSQLStore, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN is not set")
	}

	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)

	cleanTables(t, db)

	return db, func() {
		cleanTables(t, db)
		db.Close()
	}
}

func cleanTables(t *testing.T, db *MYSQLStore) {
	t.Helper()

	ctx := context.Background()
	_, err := db.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0")
	require.NoError(t, err)
	for _, table := range []string{
		"offer_image", "offer_date", "offer_destination",
		"offer_travel_type", "offer_travel_theme", "offer",
		"destination", "travel_type", "travel_theme",
		"partner", "testimonial", "page_metadata",
		"quote_request", "newsletter_subscription", "setting",
	} {
		_, err = db.db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	_, err = db.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	require.NoError(t, err)
}
