package match

import (
	"context"

	"github.com/rpggio/folio/internal/domain/project"
)

// Repository provides persistence for match records.
type Repository interface {
	Create(ctx context.Context, userID string, rec *Record) error
	Get(ctx context.Context, userID, id string) (*Record, error)
	Update(ctx context.Context, userID string, rec *Record, expectedRevision int64) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]Record, error)
}

// ProjectSource lists the projects recommendations are drawn from.
type ProjectSource interface {
	List(ctx context.Context, userID string) ([]project.Project, error)
}

// Generator is the generative-text service.
type Generator interface {
	GenerateStructured(ctx context.Context, prompt string, out any) error
	GenerateText(ctx context.Context, prompt string) (string, error)
}
