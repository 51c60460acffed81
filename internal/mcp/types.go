package mcp

import (
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/taxonomy"
)

type ListProjectsParams struct {
	Search   string `json:"search,omitempty" jsonschema:"case-insensitive substring of name, description or owner"`
	Category string `json:"category,omitempty" jsonschema:"project category, empty or All for every category"`
	Tag      string `json:"tag,omitempty" jsonschema:"exact tag, empty or All for every tag"`
}

type GetProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type LinkParams struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type,omitempty" jsonschema:"repository, live, case_study or other"`
}

type CreateProjectParams struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category,omitempty" jsonschema:"Web App, Mobile App, Website, E-commerce, SaaS, AI/ML, Design or Other"`
	ProfileOwner string       `json:"profile_owner,omitempty"`
	Tags         []string     `json:"tags,omitempty" jsonschema:"free-text tags, normalized on write"`
	Links        []LinkParams `json:"links,omitempty"`
}

type UpdateProjectParams struct {
	ID           string       `json:"id"`
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Category     *string      `json:"category,omitempty"`
	ProfileOwner *string      `json:"profile_owner,omitempty"`
	Tags         []string     `json:"tags,omitempty" jsonschema:"replaces every tag when present"`
	Links        []LinkParams `json:"links,omitempty" jsonschema:"replaces every link when present"`
}

type DeleteProjectsParams struct {
	IDs []string `json:"ids"`
}

type TagProjectsParams struct {
	IDs  []string `json:"ids"`
	Tags []string `json:"tags"`
}

type EnhanceProjectParams struct {
	ID    string `json:"id"`
	Apply bool   `json:"apply,omitempty" jsonschema:"store the suggestion instead of only returning it"`
}

type NormalizeTagsParams struct {
	Tags []string `json:"tags"`
}

type GetTaxonomyParams struct {
	Category string `json:"category,omitempty" jsonschema:"restrict to one category"`
}

type ImportGitHubParams struct {
	Account string `json:"account" jsonschema:"GitHub user or organization"`
	Save    bool   `json:"save,omitempty" jsonschema:"create projects for repositories not yet in the portfolio"`
}

type AnalyzeRequirementsParams struct {
	Requirements string `json:"requirements" jsonschema:"client brief, at least 10 characters"`
	ClientName   string `json:"client_name,omitempty"`
}

type ReanalyzeMatchParams struct {
	MatchID      string `json:"match_id"`
	Requirements string `json:"requirements"`
}

type ToggleSelectionParams struct {
	MatchID   string `json:"match_id"`
	ProjectID string `json:"project_id"`
}

type GenerateProposalParams struct {
	MatchID    string  `json:"match_id"`
	SenderType string  `json:"sender_type,omitempty" jsonschema:"Agency (default) or Individual"`
	SenderName string  `json:"sender_name,omitempty" jsonschema:"required for Individual"`
	ClientName *string `json:"client_name,omitempty" jsonschema:"replaces the stored client name"`
}

type MatchIDParams struct {
	MatchID string `json:"match_id"`
}

type GetRecentActivityParams struct {
	SubjectID string `json:"subject_id,omitempty" jsonschema:"project or match id"`
	Type      string `json:"type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

type EmptyParams struct{}

// Responses.

type ProjectListResponse struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

type DeleteProjectsResponse struct {
	Deleted int `json:"deleted"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type TaxonomyResponse struct {
	Categories []taxonomy.Group `json:"categories"`
}

type MatchListResponse struct {
	Matches []match.Summary `json:"matches"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

type ActivityResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}

func links(in []LinkParams) []project.Link {
	if in == nil {
		return nil
	}
	out := make([]project.Link, 0, len(in))
	for _, l := range in {
		out = append(out, project.Link{Label: l.Label, URL: l.URL, Type: project.LinkType(l.Type)})
	}
	return out
}
