package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/repository/mocks"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_EnhanceSuggestOnly(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	gen := &mocks.Generator{}

	repo.On("Get", ctx, "user1", "p1").Return(&project.Project{ID: "p1", Name: "Shelf", Tags: []string{"E-commerce"}}, nil)
	gen.On("GenerateStructured", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(mocks.FillStructured(`{"description":"A fast headless storefront.","tags":["ecommerce","nextjs","stripe"]}`)).
		Return(nil)

	svc := project.NewService(repo, nil, taxonomy.Default(), nil, project.WithGenerator(gen))
	out, err := svc.Enhance(ctx, "user1", "p1", false)
	require.NoError(t, err)
	require.False(t, out.Applied)
	require.Equal(t, "A fast headless storefront.", out.Description)
	require.Equal(t, []string{"E-commerce", "Next.js", "Stripe"}, out.Tags)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_EnhanceApply(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	gen := &mocks.Generator{}

	repo.On("Get", ctx, "user1", "p1").Return(&project.Project{ID: "p1", Name: "Shelf", Description: "old"}, nil)
	repo.On("Update", ctx, "user1", mock.MatchedBy(func(p *project.Project) bool { return p.Description == "old" })).Return(nil)
	gen.On("GenerateStructured", ctx, mock.Anything, mock.Anything).
		Run(mocks.FillStructured(`{"description":"","tags":["minimal"]}`)).
		Return(nil)

	svc := project.NewService(repo, nil, taxonomy.Default(), nil, project.WithGenerator(gen))
	out, err := svc.Enhance(ctx, "user1", "p1", true)
	require.NoError(t, err)
	require.True(t, out.Applied)
	require.Equal(t, []string{"Minimalist"}, out.Project.Tags)
	repo.AssertExpectations(t)
}

func TestProjectService_EnhanceFailureLeavesProject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	gen := &mocks.Generator{}

	repo.On("Get", ctx, "user1", "p1").Return(&project.Project{ID: "p1", Name: "Shelf"}, nil)
	gen.On("GenerateStructured", ctx, mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))

	svc := project.NewService(repo, nil, nil, nil, project.WithGenerator(gen))
	_, err := svc.Enhance(ctx, "user1", "p1", true)
	require.ErrorContains(t, err, "quota exceeded")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_EnhanceWithoutGenerator(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, nil, nil, nil)
	_, err := svc.Enhance(context.Background(), "user1", "p1", false)
	require.ErrorIs(t, err, project.ErrGeneratorUnavailable)
}
