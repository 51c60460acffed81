package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	entry1 := &activity.ActivityEntry{
		SubjectID:    "p1",
		ActivityType: activity.TypeProjectCreated,
		Summary:      "Created project",
		Details:      `{"id":"p1"}`,
		CreatedAt:    base,
	}
	entry2 := &activity.ActivityEntry{
		SubjectID:    "m1",
		ActivityType: activity.TypeMatchAnalyzed,
		Summary:      "Analyzed requirements",
		CreatedAt:    base.Add(time.Second),
	}

	require.NoError(t, repo.Log(ctx, "user1", entry1))
	require.NoError(t, repo.Log(ctx, "user1", entry2))
	require.NotZero(t, entry1.ID)
	require.Equal(t, "user1", entry1.UserID)

	entries, err := repo.List(ctx, "user1", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.Equal(t, `{"id":"p1"}`, entries[1].Details)
}

func TestActivityRepository_FiltersAndUserIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	for _, e := range []*activity.ActivityEntry{
		{SubjectID: "p1", ActivityType: activity.TypeProjectCreated, Summary: "created"},
		{SubjectID: "p1", ActivityType: activity.TypeProjectUpdated, Summary: "updated"},
		{SubjectID: "p2", ActivityType: activity.TypeProjectUpdated, Summary: "updated"},
	} {
		require.NoError(t, repo.Log(ctx, "user1", e))
	}

	subject := "p1"
	typ := activity.TypeProjectUpdated
	entries, err := repo.List(ctx, "user1", activity.ListActivityOptions{SubjectID: &subject, ActivityType: &typ})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, "user1", activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, "user1", activity.ListActivityOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, "user2", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Empty(t, entries)
}
