package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, userID string, proj *Project) error
	Get(ctx context.Context, userID, id string) (*Project, error)
	Update(ctx context.Context, userID string, proj *Project) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]Project, error)
}

// Generator produces structured content from a prompt.
type Generator interface {
	GenerateStructured(ctx context.Context, prompt string, out any) error
}

// RepositorySource lists an account's repositories as draft projects.
type RepositorySource interface {
	Drafts(ctx context.Context, account string) ([]CreateRequest, error)
}
