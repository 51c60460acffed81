package activity

import "context"

// Sink accepts activity entries. Other services log through it.
type Sink interface {
	Log(ctx context.Context, userID string, entry *ActivityEntry) error
}

// Repository provides persistence operations for activity entries.
type Repository interface {
	Sink
	List(ctx context.Context, userID string, opts ListActivityOptions) ([]ActivityEntry, error)
}
