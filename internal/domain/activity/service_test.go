package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	userID := "user1"

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		SubjectID:    "proj1",
		ActivityType: activity.TypeProjectCreated,
		Summary:      "created",
	}

	subject := "proj1"
	repo.On("Log", ctx, userID, entry).Return(nil)
	repo.On("List", ctx, userID, activity.ListActivityOptions{SubjectID: &subject, Limit: 50}).Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, userID, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, userID, activity.ListActivityOptions{SubjectID: &subject})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_LogValidation(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "user1", nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "user1", &activity.ActivityEntry{ActivityType: activity.TypeMatchDeleted}), activity.ErrInvalidInput)
}

func TestRecord_SwallowsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, "user1", mock.Anything).Return(errors.New("disk full"))

	require.NotPanics(t, func() {
		activity.Record(ctx, repo, nil, "user1", &activity.ActivityEntry{ActivityType: activity.TypeMatchDeleted, Summary: "deleted"})
	})
	repo.AssertNumberOfCalls(t, "Log", 1)
}

func TestDetails(t *testing.T) {
	require.JSONEq(t, `{"count":2}`, activity.Details(map[string]int{"count": 2}))
}
