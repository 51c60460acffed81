package project_test

import (
	"context"
	"testing"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/repository/mocks"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func drafts() []project.CreateRequest {
	return []project.CreateRequest{
		{
			Name:         "finflex",
			Category:     project.CategoryOther,
			ProfileOwner: "ada",
			Tags:         []string{"TypeScript", "react-native"},
			Links:        []project.Link{{Label: "Repository", URL: "https://github.com/ada/finflex", Type: project.LinkRepository}},
		},
		{
			Name:         "dotfiles",
			Category:     project.CategoryOther,
			ProfileOwner: "ada",
			Links:        []project.Link{{Label: "Repository", URL: "https://github.com/ada/dotfiles", Type: project.LinkRepository}},
		},
	}
}

func TestProjectService_ImportRepositoriesDraftsOnly(t *testing.T) {
	ctx := context.Background()
	source := &mocks.RepositorySource{}
	source.On("Drafts", ctx, "ada").Return(drafts(), nil)

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil, taxonomy.Default(), nil, project.WithRepositorySource(source))
	out, err := svc.ImportRepositories(ctx, "user1", " ada ", false)
	require.NoError(t, err)
	require.Len(t, out.Drafts, 2)
	require.Equal(t, []string{"TypeScript", "React Native"}, out.Drafts[0].Tags)
	require.Empty(t, out.Saved)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_ImportRepositoriesSkipsKnownLinks(t *testing.T) {
	ctx := context.Background()
	source := &mocks.RepositorySource{}
	source.On("Drafts", ctx, "ada").Return(drafts(), nil)

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, "user1").Return([]project.Project{{
		ID:    "p1",
		Name:  "FinFlex",
		Links: []project.Link{{Label: "Code", URL: "https://github.com/ada/finflex", Type: project.LinkRepository}},
	}}, nil)
	repo.On("Create", ctx, "user1", mock.MatchedBy(func(p *project.Project) bool { return p.Name == "dotfiles" })).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, project.WithRepositorySource(source))
	out, err := svc.ImportRepositories(ctx, "user1", "ada", true)
	require.NoError(t, err)
	require.Equal(t, 1, out.Skipped)
	require.Len(t, out.Saved, 1)
	require.Equal(t, "dotfiles", out.Saved[0].Name)
	repo.AssertExpectations(t)
}

func TestProjectService_ImportRepositoriesValidation(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, nil, nil, nil)
	_, err := svc.ImportRepositories(context.Background(), "user1", "  ", false)
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.ImportRepositories(context.Background(), "user1", "ada", false)
	require.ErrorIs(t, err, project.ErrSourceUnavailable)
}

func TestProjectService_ImportRepositoriesValidatesBeforeSaving(t *testing.T) {
	ctx := context.Background()
	batch := drafts()
	batch = append(batch[:1], append([]project.CreateRequest{{
		Name:  "broken",
		Links: []project.Link{{Label: "Live Site", URL: "https://my site", Type: project.LinkLive}},
	}}, batch[1:]...)...)

	source := &mocks.RepositorySource{}
	source.On("Drafts", ctx, "ada").Return(batch, nil)
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, "user1").Return([]project.Project{}, nil)

	svc := project.NewService(repo, nil, nil, nil, project.WithRepositorySource(source))
	out, err := svc.ImportRepositories(ctx, "user1", "ada", true)
	require.ErrorIs(t, err, project.ErrInvalidLink)
	require.Nil(t, out)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
