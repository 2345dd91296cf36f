package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

func submitQuote(t *testing.T, db *MYSQLStore, email string) string {
	t.Helper()
	ref, err := db.SubmitQuoteRequest(context.Background(), &entity.QuoteRequestInsert{
		FirstName: "Marie",
		LastName:  "Dupont",
		Email:     email,
	})
	require.NoError(t, err)
	return ref
}

func TestSubmitQuoteRequest(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ref1 := submitQuote(t, db, "marie@example.com")
	ref2 := submitQuote(t, db, "marie@example.com")
	assert.NotEmpty(t, ref1)
	assert.NotEqual(t, ref1, ref2)

	quotes, total, err := db.GetQuoteRequestsPaged(ctx, 10, 0, entity.QuoteRequestFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, quotes, 2)
	assert.Equal(t, entity.QuoteStatusNew, quotes[0].Status)
}

func TestQuoteRequestsPagedFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	submitQuote(t, db, "marie@example.com")
	submitQuote(t, db, "paul@example.com")
	submitQuote(t, db, "paul@example.com")

	quotes, total, err := db.GetQuoteRequestsPaged(ctx, 10, 0, entity.QuoteRequestFilters{
		Email: "paul@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, quotes, 2)

	// pagination
	quotes, total, err = db.GetQuoteRequestsPaged(ctx, 2, 0, entity.QuoteRequestFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, quotes, 2)

	quotes, _, err = db.GetQuoteRequestsPaged(ctx, 2, 2, entity.QuoteRequestFilters{})
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
}

func TestUpdateQuoteRequestStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	submitQuote(t, db, "marie@example.com")

	quotes, _, err := db.GetQuoteRequestsPaged(ctx, 1, 0, entity.QuoteRequestFilters{})
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	require.NoError(t, db.UpdateQuoteRequestStatus(ctx, quotes[0].Id, entity.QuoteStatusInProgress))

	status := entity.QuoteStatusInProgress
	filtered, total, err := db.GetQuoteRequestsPaged(ctx, 10, 0, entity.QuoteRequestFilters{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, entity.QuoteStatusInProgress, filtered[0].Status)

	assert.ErrorIs(t, db.UpdateQuoteRequestStatus(ctx, 999999, entity.QuoteStatusClosed), gerr.ErrNotFound)
}
