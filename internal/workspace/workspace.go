// Package workspace assembles the domain services over a storage backend and
// picks the backend for an identity.
package workspace

import (
	"context"
	"log/slog"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/memstore"
	"github.com/rpggio/folio/internal/sqlite"
	"github.com/rpggio/folio/internal/taxonomy"
)

// Generator is the generative-text service shared by both workspaces.
type Generator interface {
	GenerateStructured(ctx context.Context, prompt string, out any) error
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Workspace is one set of services over one store.
type Workspace struct {
	Projects *project.Service
	Matches  *match.Service
	Activity *activity.Service
}

// Deps are the collaborators shared by every workspace. Generator and Source
// may be nil; the operations needing them then report the service as
// unavailable.
type Deps struct {
	Taxonomy  *taxonomy.Taxonomy
	Generator Generator
	Source    project.RepositorySource
	Logger    *slog.Logger
}

// Set holds the persistent and ephemeral workspaces.
type Set struct {
	Taxonomy   *taxonomy.Taxonomy
	persistent *Workspace
	ephemeral  *Workspace
}

// NewSet builds a persistent workspace over db and an ephemeral one in
// memory. With a nil db both identities share the in-memory store.
func NewSet(db *sqlite.DB, deps Deps) *Set {
	mem := memstore.New()
	ephemeral := Build(mem.Projects(), mem.Matches(), mem.Activity(), deps)

	persistent := ephemeral
	if db != nil {
		persistent = Build(
			sqlite.NewProjectRepository(db),
			sqlite.NewMatchRepository(db),
			sqlite.NewActivityRepository(db),
			deps,
		)
	}
	return &Set{Taxonomy: deps.Taxonomy, persistent: persistent, ephemeral: ephemeral}
}

// For returns the workspace serving id.
func (s *Set) For(id identity.Identity) *Workspace {
	if id.Ephemeral {
		return s.ephemeral
	}
	return s.persistent
}

// Build wires the services over the given repositories.
func Build(projects project.Repository, matches match.Repository, activities activity.Repository, deps Deps) *Workspace {
	var opts []project.Option
	var gen match.Generator
	if deps.Generator != nil {
		opts = append(opts, project.WithGenerator(deps.Generator))
		gen = deps.Generator
	}
	if deps.Source != nil {
		opts = append(opts, project.WithRepositorySource(deps.Source))
	}

	return &Workspace{
		Projects: project.NewService(projects, activities, deps.Taxonomy, deps.Logger, opts...),
		Matches:  match.NewService(matches, projects, gen, activities, deps.Logger),
		Activity: activity.NewService(activities, deps.Logger),
	}
}
