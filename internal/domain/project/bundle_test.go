package project_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/repository"
	"github.com/rpggio/folio/internal/repository/mocks"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBundle_EncodeDecodePreservesProjects(t *testing.T) {
	modified := time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)
	in := &project.Bundle{
		Version:    project.BundleVersion,
		ExportedAt: modified,
		Projects: []project.Project{{
			ID:           "p1",
			UserID:       "user1",
			Name:         "FinFlex",
			Description:  "Budgeting",
			Category:     project.CategoryMobileApp,
			ProfileOwner: "Ada",
			Tags:         []string{"FinTech", "raw tag"},
			Links:        []project.Link{{ID: "l1", Label: "Repo", URL: "https://github.com/ada/finflex", Type: project.LinkRepository}},
			LastModified: modified,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, project.EncodeBundle(&buf, in))

	out, err := project.DecodeBundle(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeBundle_BareArray(t *testing.T) {
	b, err := project.DecodeBundle(strings.NewReader(`[{"id":"p1","name":"A","category":"Other"}]`))
	require.NoError(t, err)
	require.Equal(t, project.BundleVersion, b.Version)
	require.Len(t, b.Projects, 1)
}

func TestDecodeBundle_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "{", `{"version": 99, "projects": []}`} {
		_, err := project.DecodeBundle(strings.NewReader(in))
		require.ErrorIs(t, err, project.ErrInvalidBundle, "input %q", in)
	}
}

func TestProjectService_Export(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, "user1").Return(nil, nil)

	svc := project.NewService(repo, nil, nil, nil)
	b, err := svc.Export(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, project.BundleVersion, b.Version)
	require.NotNil(t, b.Projects)
	require.Empty(t, b.Projects)
}

func TestProjectService_ImportUpserts(t *testing.T) {
	ctx := context.Background()
	userID := "user1"
	modified := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, userID, "existing").Return(&project.Project{ID: "existing", Name: "Old"}, nil)
	repo.On("Get", ctx, userID, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("Update", ctx, userID, mock.MatchedBy(func(p *project.Project) bool { return p.ID == "existing" })).Return(nil)
	repo.On("Create", ctx, userID, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, taxonomy.Default(), nil)
	result, err := svc.Import(ctx, userID, &project.Bundle{Projects: []project.Project{
		{ID: "existing", Name: "Renamed", Tags: []string{"golang"}, LastModified: modified},
		{Name: "Fresh", UserID: "someone-else", Category: project.CategoryDesign},
	}})
	require.NoError(t, err)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 1, result.Created)
	require.Equal(t, []string{"Go"}, result.Projects[0].Tags)
	require.True(t, modified.Equal(result.Projects[0].LastModified))
	require.NotEmpty(t, result.Projects[1].ID)
	require.Equal(t, userID, result.Projects[1].UserID)
}

func TestProjectService_ImportValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}

	svc := project.NewService(repo, nil, nil, nil)
	_, err := svc.Import(ctx, "user1", &project.Bundle{Projects: []project.Project{
		{Name: "Valid"},
		{Name: ""},
	}})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_ImportStoreError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "user1", mock.Anything).Return(nil, errors.New("db down"))

	svc := project.NewService(repo, nil, nil, nil)
	_, err := svc.Import(ctx, "user1", &project.Bundle{Projects: []project.Project{{Name: "A"}}})
	require.Error(t, err)
}
