// Package memstore keeps projects, match records and activity in process
// memory. It backs guest sessions, whose data is discarded on restart.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/repository"
)

// Store is a mutex-guarded set of per-user collections. Values are cloned on
// the way in and out so callers never share slices with the store.
type Store struct {
	mu       sync.RWMutex
	projects map[string]map[string]project.Project
	matches  map[string]map[string]match.Record
	activity map[string][]activity.ActivityEntry
	nextID   int64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		projects: map[string]map[string]project.Project{},
		matches:  map[string]map[string]match.Record{},
		activity: map[string][]activity.ActivityEntry{},
	}
}

// Projects returns the project repository view of the store.
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

// Matches returns the match repository view of the store.
func (s *Store) Matches() *MatchRepository { return &MatchRepository{s: s} }

// Activity returns the activity repository view of the store.
func (s *Store) Activity() *ActivityRepository { return &ActivityRepository{s: s} }

// ProjectRepository implements project.Repository in memory.
type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) Create(_ context.Context, userID string, proj *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.projects[userID]
	if bucket == nil {
		bucket = map[string]project.Project{}
		r.s.projects[userID] = bucket
	}
	if _, exists := bucket[proj.ID]; exists {
		return repository.ErrDuplicate
	}
	stored := cloneProject(*proj)
	stored.UserID = userID
	bucket[proj.ID] = stored
	return nil
}

func (r *ProjectRepository) Get(_ context.Context, userID, id string) (*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	proj, ok := r.s.projects[userID][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneProject(proj)
	return &out, nil
}

func (r *ProjectRepository) Update(_ context.Context, userID string, proj *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.projects[userID]
	if _, ok := bucket[proj.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := cloneProject(*proj)
	stored.UserID = userID
	bucket[proj.ID] = stored
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.projects[userID]
	if _, ok := bucket[id]; !ok {
		return repository.ErrNotFound
	}
	delete(bucket, id)
	return nil
}

// List returns projects most recently modified first.
func (r *ProjectRepository) List(_ context.Context, userID string) ([]project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]project.Project, 0, len(r.s.projects[userID]))
	for _, p := range r.s.projects[userID] {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].LastModified, out[j].LastModified, out[i].ID, out[j].ID)
	})
	return out, nil
}

// MatchRepository implements match.Repository in memory.
type MatchRepository struct{ s *Store }

func (r *MatchRepository) Create(_ context.Context, userID string, rec *match.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.matches[userID]
	if bucket == nil {
		bucket = map[string]match.Record{}
		r.s.matches[userID] = bucket
	}
	if _, exists := bucket[rec.ID]; exists {
		return repository.ErrDuplicate
	}
	stored := cloneRecord(*rec)
	stored.UserID = userID
	bucket[rec.ID] = stored
	return nil
}

func (r *MatchRepository) Get(_ context.Context, userID, id string) (*match.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.matches[userID][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneRecord(rec)
	return &out, nil
}

// Update replaces the record only while it is still at expectedRevision.
func (r *MatchRepository) Update(_ context.Context, userID string, rec *match.Record, expectedRevision int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.matches[userID]
	current, ok := bucket[rec.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if current.Revision != expectedRevision {
		return repository.ErrConflict
	}
	stored := cloneRecord(*rec)
	stored.UserID = userID
	bucket[rec.ID] = stored
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.matches[userID]
	if _, ok := bucket[id]; !ok {
		return repository.ErrNotFound
	}
	delete(bucket, id)
	return nil
}

// List returns records newest first.
func (r *MatchRepository) List(_ context.Context, userID string) ([]match.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]match.Record, 0, len(r.s.matches[userID]))
	for _, rec := range r.s.matches[userID] {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].Timestamp, out[j].Timestamp, out[i].ID, out[j].ID)
	})
	return out, nil
}

// ActivityRepository implements activity.Repository in memory.
type ActivityRepository struct{ s *Store }

func (r *ActivityRepository) Log(_ context.Context, userID string, entry *activity.ActivityEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	entry.ID = r.s.nextID
	entry.UserID = userID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.s.activity[userID] = append(r.s.activity[userID], *entry)
	return nil
}

// List returns entries newest first, filtered and paged like the SQLite store.
func (r *ActivityRepository) List(_ context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.activity[userID]
	out := make([]activity.ActivityEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if opts.SubjectID != nil && e.SubjectID != *opts.SubjectID {
			continue
		}
		if opts.ActivityType != nil && e.ActivityType != *opts.ActivityType {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []activity.ActivityEntry{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func newerFirst(a, b time.Time, aID, bID string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID < bID
}

// cloneSlice copies s and never returns nil, so values encode as [] the way
// the SQLite store returns them.
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneProject(p project.Project) project.Project {
	p.Tags = cloneSlice(p.Tags)
	p.Links = cloneSlice(p.Links)
	return p
}

func cloneRecord(r match.Record) match.Record {
	r.Recommendations = cloneSlice(r.Recommendations)
	r.SelectedProjectIDs = cloneSlice(r.SelectedProjectIDs)
	return r
}
