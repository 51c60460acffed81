package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/repository"
	"github.com/stretchr/testify/require"
)

func newMatch(id string, ts time.Time) *match.Record {
	return &match.Record{
		ID:                 id,
		Timestamp:          ts,
		Requirements:       "Booking site for a boutique hotel",
		Recommendations:    []match.Recommendation{{ProjectID: "p1", Reason: "travel"}},
		SelectedProjectIDs: []string{"p1"},
		ClientName:         "Acme",
		SenderType:         match.SenderAgency,
		Status:             match.StatusDraft,
		Revision:           1,
		UpdatedAt:          ts,
	}
}

func TestMatchRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()
	ts := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	rec := newMatch("m1", ts)
	require.NoError(t, repo.Create(ctx, "user1", rec))

	got, err := repo.Get(ctx, "user1", "m1")
	require.NoError(t, err)
	require.Equal(t, "user1", got.UserID)
	require.Equal(t, rec.Recommendations, got.Recommendations)
	require.Equal(t, rec.SelectedProjectIDs, got.SelectedProjectIDs)
	require.Equal(t, match.StatusDraft, got.Status)
	require.Equal(t, int64(1), got.Revision)
	require.True(t, ts.Equal(got.Timestamp))

	_, err = repo.Get(ctx, "user2", "m1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMatchRepository_UpdateRevision(t *testing.T) {
	db := NewTestDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	rec := newMatch("m1", time.Now())
	require.NoError(t, repo.Create(ctx, "user1", rec))

	rec.Proposal = "Dear Acme"
	rec.Status = match.StatusProposed
	rec.Revision = 2
	require.NoError(t, repo.Update(ctx, "user1", rec, 1))

	got, err := repo.Get(ctx, "user1", "m1")
	require.NoError(t, err)
	require.Equal(t, "Dear Acme", got.Proposal)
	require.Equal(t, int64(2), got.Revision)

	// A writer still holding revision 1 loses.
	stale := newMatch("m1", time.Now())
	stale.Revision = 2
	require.ErrorIs(t, repo.Update(ctx, "user1", stale, 1), repository.ErrConflict)

	require.ErrorIs(t, repo.Update(ctx, "user1", newMatch("missing", time.Now()), 1), repository.ErrNotFound)
}

func TestMatchRepository_ListDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, "user1", newMatch("first", base)))
	require.NoError(t, repo.Create(ctx, "user1", newMatch("second", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, "user2", newMatch("other", base)))

	list, err := repo.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].ID)

	require.NoError(t, repo.Delete(ctx, "user1", "first"))
	require.ErrorIs(t, repo.Delete(ctx, "user1", "first"), repository.ErrNotFound)

	list, err = repo.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
