package mocks

import (
	"context"
	"encoding/json"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, userID string, proj *project.Project) error {
	args := m.Called(ctx, userID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	args := m.Called(ctx, userID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, userID string, proj *project.Project) error {
	args := m.Called(ctx, userID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, userID string) ([]project.Project, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MatchRepository is a mock for match.Repository.
type MatchRepository struct {
	mock.Mock
}

func (m *MatchRepository) Create(ctx context.Context, userID string, rec *match.Record) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

func (m *MatchRepository) Get(ctx context.Context, userID, id string) (*match.Record, error) {
	args := m.Called(ctx, userID, id)
	if rec, ok := args.Get(0).(*match.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MatchRepository) Update(ctx context.Context, userID string, rec *match.Record, expectedRevision int64) error {
	args := m.Called(ctx, userID, rec, expectedRevision)
	return args.Error(0)
}

func (m *MatchRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MatchRepository) List(ctx context.Context, userID string) ([]match.Record, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]match.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Generator is a mock for the generative-text service.
type Generator struct {
	mock.Mock
}

func (m *Generator) GenerateStructured(ctx context.Context, prompt string, out any) error {
	args := m.Called(ctx, prompt, out)
	return args.Error(0)
}

func (m *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// FillStructured returns a Run function that decodes raw into the out
// argument of GenerateStructured.
func FillStructured(raw string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(raw), args.Get(2)); err != nil {
			panic(err)
		}
	}
}

// RepositorySource is a mock for project.RepositorySource.
type RepositorySource struct {
	mock.Mock
}

func (m *RepositorySource) Drafts(ctx context.Context, account string) ([]project.CreateRequest, error) {
	args := m.Called(ctx, account)
	if list, ok := args.Get(0).([]project.CreateRequest); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
