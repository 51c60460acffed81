package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/folio/internal/domain/activity"
)

// BundleVersion is the current export format version.
const BundleVersion = 1

// Bundle is the portable export of a user's projects.
type Bundle struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Projects   []Project `json:"projects"`
}

// ImportResult summarizes a bundle import.
type ImportResult struct {
	Created  int       `json:"created"`
	Updated  int       `json:"updated"`
	Projects []Project `json:"projects"`
}

// EncodeBundle writes b as indented JSON.
func EncodeBundle(w io.Writer, b *Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return nil
}

// DecodeBundle reads a bundle. A bare JSON array of projects is accepted as
// a version 1 bundle.
func DecodeBundle(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidBundle)
	}

	if trimmed[0] == '[' {
		var projects []Project
		if err := json.Unmarshal(trimmed, &projects); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
		}
		return &Bundle{Version: BundleVersion, Projects: projects}, nil
	}

	var b Bundle
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if b.Version > BundleVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBundle, b.Version)
	}
	return &b, nil
}

// Export returns every project of a user as a bundle.
func (s *Service) Export(ctx context.Context, userID string) (*Bundle, error) {
	projects, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []Project{}
	}
	return &Bundle{
		Version:    BundleVersion,
		ExportedAt: s.now().UTC(),
		Projects:   projects,
	}, nil
}

// Import upserts the projects of a bundle. Every entry is validated before
// anything is written.
func (s *Service) Import(ctx context.Context, userID string, b *Bundle) (*ImportResult, error) {
	if b == nil {
		return nil, ErrInvalidBundle
	}

	prepared := make([]*Project, 0, len(b.Projects))
	for i, p := range b.Projects {
		proj, err := s.build(userID, CreateRequest{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Category:     p.Category,
			ProfileOwner: p.ProfileOwner,
			Tags:         p.Tags,
			Links:        p.Links,
		})
		if err != nil {
			return nil, fmt.Errorf("project %d (%q): %w", i, p.Name, err)
		}
		if !p.LastModified.IsZero() {
			proj.LastModified = p.LastModified
		}
		prepared = append(prepared, proj)
	}

	result := &ImportResult{Projects: make([]Project, 0, len(prepared))}
	for _, proj := range prepared {
		_, err := s.Get(ctx, userID, proj.ID)
		switch {
		case err == nil:
			if err := s.save(ctx, userID, proj); err != nil {
				return result, err
			}
			result.Updated++
		case errors.Is(err, ErrProjectNotFound):
			if err := s.repo.Create(ctx, userID, proj); err != nil {
				return result, fmt.Errorf("creating project: %w", err)
			}
			result.Created++
		default:
			return result, err
		}
		result.Projects = append(result.Projects, *proj)
	}

	s.record(ctx, userID, activity.TypeProjectsImported, "",
		fmt.Sprintf("imported %d projects", len(result.Projects)),
		map[string]int{"created": result.Created, "updated": result.Updated})
	return result, nil
}
