package github

import (
	"context"
	"strings"

	"github.com/rpggio/folio/internal/domain/project"
)

// Drafts lists account's repositories as draft projects.
func (c *Client) Drafts(ctx context.Context, account string) ([]project.CreateRequest, error) {
	repos, err := c.ListRepositories(ctx, account)
	if err != nil {
		return nil, err
	}
	drafts := make([]project.CreateRequest, 0, len(repos))
	for _, r := range repos {
		drafts = append(drafts, ToDraft(r, account))
	}
	return drafts, nil
}

// ToDraft maps a repository to a draft project. Tags are left raw; the
// project service normalizes them on the way in.
func ToDraft(r Repository, account string) project.CreateRequest {
	draft := project.CreateRequest{
		Name:         r.Name,
		Description:  strings.TrimSpace(r.Description),
		Category:     project.CategoryOther,
		ProfileOwner: account,
	}

	if r.Language != "" {
		draft.Tags = append(draft.Tags, r.Language)
	}
	draft.Tags = append(draft.Tags, r.Topics...)

	if r.HTMLURL != "" {
		draft.Links = append(draft.Links, project.Link{Label: "Repository", URL: r.HTMLURL, Type: project.LinkRepository})
	}
	// GitHub stores homepages as free text; ones that are not a usable URL
	// are dropped rather than failing the whole import.
	if home := homepageURL(r.Homepage); home != "" {
		live := project.Link{Label: "Live Site", URL: home, Type: project.LinkLive}
		if project.ValidateLinks([]project.Link{live}) == nil {
			draft.Category = project.CategoryWebsite
			draft.Links = append(draft.Links, live)
		}
	}
	return draft
}

// homepageURL adds a scheme to bare hostnames, which GitHub allows.
func homepageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
