package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/repository"
)

// ImportRepositories lists an account's repositories as drafts. When save is
// set, drafts whose repository link is not already in the portfolio are
// created.
func (s *Service) ImportRepositories(ctx context.Context, userID, account string, save bool) (*RepositoryImport, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, fmt.Errorf("%w: account is required", ErrInvalidInput)
	}
	if s.source == nil {
		return nil, ErrSourceUnavailable
	}

	drafts, err := s.source.Drafts(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("listing repositories for %s: %w", account, err)
	}
	for i := range drafts {
		drafts[i].Tags = s.ingestTags(drafts[i].Tags)
	}

	out := &RepositoryImport{Account: account, Drafts: drafts}
	if !save {
		return out, nil
	}

	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{})
	for _, p := range existing {
		for _, l := range p.Links {
			known[l.URL] = struct{}{}
		}
	}

	// Every draft is validated before anything is written.
	pending := make([]*Project, 0, len(drafts))
	for i, draft := range drafts {
		if repoURL := repositoryURL(draft.Links); repoURL != "" {
			if _, dup := known[repoURL]; dup {
				out.Skipped++
				continue
			}
			known[repoURL] = struct{}{}
		}
		proj, err := s.build(userID, draft)
		if err != nil {
			return nil, fmt.Errorf("repository %d (%q): %w", i, draft.Name, err)
		}
		pending = append(pending, proj)
	}

	for _, proj := range pending {
		if err := s.repo.Create(ctx, userID, proj); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return out, ErrDuplicateProject
			}
			return out, fmt.Errorf("creating project: %w", err)
		}
		s.record(ctx, userID, activity.TypeProjectCreated, proj.ID, fmt.Sprintf("created project %q", proj.Name), nil)
		out.Saved = append(out.Saved, *proj)
	}
	return out, nil
}

// RepositoryImport is the outcome of ImportRepositories.
type RepositoryImport struct {
	Account string          `json:"account"`
	Drafts  []CreateRequest `json:"drafts"`
	Saved   []Project       `json:"saved,omitempty"`
	Skipped int             `json:"skipped,omitempty"`
}

func repositoryURL(links []Link) string {
	for _, l := range links {
		if l.Type == LinkRepository {
			return strings.TrimSpace(l.URL)
		}
	}
	return ""
}
