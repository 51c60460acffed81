package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/repository"
	"github.com/rpggio/folio/internal/taxonomy"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	activities activity.Sink
	tags       *taxonomy.Taxonomy
	generator  Generator
	source     RepositorySource
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures optional collaborators of a Service.
type Option func(*Service)

// WithGenerator enables description enhancement.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.generator = g }
}

// WithRepositorySource enables importing repositories as projects.
func WithRepositorySource(src RepositorySource) Option {
	return func(s *Service) { s.source = src }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new project service. Tags are normalized through tags
// whenever projects are written; a nil taxonomy stores tags as entered.
func NewService(repo Repository, activities activity.Sink, tags *taxonomy.Taxonomy, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		activities: activities,
		tags:       tags,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	ProfileOwner string   `json:"profileOwner"`
	Tags         []string `json:"tags"`
	Links        []Link   `json:"links"`
}

// UpdateRequest describes a partial project update. Nil fields are left
// unchanged; a non-nil empty Tags or Links clears them.
type UpdateRequest struct {
	ID           string
	Name         *string
	Description  *string
	Category     *Category
	ProfileOwner *string
	Tags         []string
	Links        []Link
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Project, error) {
	proj, err := s.build(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, userID, proj); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateProject
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.record(ctx, userID, activity.TypeProjectCreated, proj.ID, fmt.Sprintf("created project %q", proj.Name), nil)
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Update applies a partial update to a project.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*Project, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		if err := ValidateName(*req.Name); err != nil {
			return nil, err
		}
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		if err := ValidateCategory(*req.Category); err != nil {
			return nil, err
		}
		updated.Category = *req.Category
	}
	if req.ProfileOwner != nil {
		updated.ProfileOwner = strings.TrimSpace(*req.ProfileOwner)
	}
	if req.Tags != nil {
		updated.Tags = s.ingestTags(req.Tags)
	}
	if req.Links != nil {
		links := prepareLinks(req.Links)
		if err := ValidateLinks(links); err != nil {
			return nil, err
		}
		updated.Links = links
	}
	updated.LastModified = s.now()

	if err := s.save(ctx, userID, &updated); err != nil {
		return nil, err
	}

	s.record(ctx, userID, activity.TypeProjectUpdated, updated.ID, fmt.Sprintf("updated project %q", updated.Name), nil)
	return &updated, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.record(ctx, userID, activity.TypeProjectDeleted, id, fmt.Sprintf("deleted project %s", id), nil)
	return nil
}

// DeleteMany removes every listed project and returns how many existed.
func (s *Service) DeleteMany(ctx context.Context, userID string, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		err := s.Delete(ctx, userID, id)
		switch {
		case errors.Is(err, ErrProjectNotFound):
			continue
		case err != nil:
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// AddTags appends tags to every listed project. Unknown ids are skipped.
func (s *Service) AddTags(ctx context.Context, userID string, ids, tags []string) ([]Project, error) {
	extra := s.ingestTags(tags)
	if len(extra) == 0 {
		return nil, fmt.Errorf("%w: no tags to apply", ErrInvalidInput)
	}

	var out []Project
	for _, id := range ids {
		proj, err := s.Get(ctx, userID, id)
		if errors.Is(err, ErrProjectNotFound) {
			continue
		}
		if err != nil {
			return out, err
		}

		proj.Tags = s.ingestTags(append(append([]string{}, proj.Tags...), extra...))
		proj.LastModified = s.now()
		if err := s.save(ctx, userID, proj); err != nil {
			return out, err
		}
		s.record(ctx, userID, activity.TypeProjectUpdated, proj.ID, fmt.Sprintf("tagged project %q", proj.Name), map[string]any{"tags": extra})
		out = append(out, *proj)
	}
	return out, nil
}

// List returns all projects of a user, most recently modified first.
func (s *Service) List(ctx context.Context, userID string) ([]Project, error) {
	projects, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Filter lists the projects matching state.
func (s *Service) Filter(ctx context.Context, userID string, state FilterState) ([]Project, error) {
	projects, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Filter(projects, state), nil
}

// Tags returns the tag facet across the user's projects.
func (s *Service) Tags(ctx context.Context, userID string) ([]string, error) {
	projects, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AllTags(projects), nil
}

func (s *Service) build(userID string, req CreateRequest) (*Project, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = CategoryOther
	}
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}

	links := prepareLinks(req.Links)
	if err := ValidateLinks(links); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return &Project{
		ID:           id,
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Category:     category,
		ProfileOwner: strings.TrimSpace(req.ProfileOwner),
		Tags:         s.ingestTags(req.Tags),
		Links:        links,
		LastModified: s.now(),
	}, nil
}

func (s *Service) save(ctx context.Context, userID string, proj *Project) error {
	if err := s.repo.Update(ctx, userID, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// ingestTags drops blank tags and normalizes the rest.
func (s *Service) ingestTags(raw []string) []string {
	kept := make([]string, 0, len(raw))
	for _, tag := range raw {
		if strings.TrimSpace(tag) != "" {
			kept = append(kept, tag)
		}
	}
	if s.tags != nil {
		return s.tags.NormalizeAll(kept)
	}

	out := make([]string, 0, len(kept))
	seen := make(map[string]struct{}, len(kept))
	for _, tag := range kept {
		tag = strings.TrimSpace(tag)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *Service) record(ctx context.Context, userID string, typ activity.ActivityType, subjectID, summary string, details any) {
	entry := &activity.ActivityEntry{
		SubjectID:    subjectID,
		ActivityType: typ,
		Summary:      summary,
	}
	if details != nil {
		entry.Details = activity.Details(details)
	}
	activity.Record(ctx, s.activities, s.logger, userID, entry)
}

func prepareLinks(links []Link) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		l.Label = strings.TrimSpace(l.Label)
		l.URL = strings.TrimSpace(l.URL)
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if l.Type == "" {
			l.Type = LinkOther
		}
		out = append(out, l)
	}
	return out
}
