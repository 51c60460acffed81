package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/workspace"
)

const serverInstructions = `folio manages a portfolio of projects and matches it against client requirements.

Core concepts:
- Project: a portfolio item with a category, canonical tags and links.
- Taxonomy: the controlled tag vocabulary. Free-text tags are resolved onto canonical tags on write.
- Match: one requirements analysis. It holds recommendations (project + reason), the current selection and an optional proposal.

Default workflow:
1) Orient: list_projects (optionally filtered by search, category, tag) and list_tags.
2) Analyze: analyze_requirements with the client's brief (at least 10 characters). Every recommended project starts selected.
3) Refine: toggle_selection to add or remove projects; reanalyze_match when the brief changes.
4) Propose: generate_proposal with sender_type Agency or Individual (Individual needs sender_name).

Notes:
- Toggling the selection or re-analyzing clears any earlier proposal.
- A STALE_RESULT error means the match changed while text was being generated. Fetch it with get_match and retry.
- Read folio://taxonomy for the canonical tags by category.`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "folio://docs/index",
		Name:        "docs_index",
		Title:       "folio docs index",
		Description: "Overview of the tools and how a match moves from draft to proposal.",
		Content: `# folio docs

## Projects

- ` + "`list_projects`" + `: filter by ` + "`search`" + ` (name, description, owner; case-insensitive), ` + "`category`" + ` and ` + "`tag`" + `. Empty or "All" disables a filter.
- ` + "`create_project`" + ` / ` + "`update_project`" + `: tags are normalized onto the taxonomy on write.
- ` + "`delete_projects`" + ` and ` + "`tag_projects`" + ` act on several ids at once.
- ` + "`enhance_project`" + ` suggests a description and tags. Pass ` + "`apply=true`" + ` to store them.
- ` + "`import_github`" + ` lists an account's public repositories as drafts. Pass ` + "`save=true`" + ` to create them.

## Tags

- ` + "`list_tags`" + `: every tag in use, sorted.
- ` + "`normalize_tags`" + `: resolve free text without storing anything.
- ` + "`get_taxonomy`" + `: canonical tags grouped by category.

## Matches

| Status | Meaning |
|---|---|
| draft | fresh analysis, every recommendation selected |
| selected | selection edited or requirements re-analyzed |
| proposed | a proposal for the current selection is attached |

1. ` + "`analyze_requirements(requirements, client_name)`" + `
2. ` + "`toggle_selection(match_id, project_id)`" + ` as often as needed
3. ` + "`generate_proposal(match_id, sender_type, sender_name)`" + `

` + "`get_match`" + ` returns the record joined with the live projects. Recommendations whose project was deleted are dropped.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return textResource(req, doc.URI, "text/markdown", doc.Content), nil
		})
	}
}

const taxonomyURI = "folio://taxonomy"

func registerTaxonomyResource(server *sdkmcp.Server, set *workspace.Set) {
	server.AddResource(&sdkmcp.Resource{
		URI:         taxonomyURI,
		Name:        "taxonomy",
		Title:       "Tag taxonomy",
		Description: "Canonical tags grouped by category.",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(taxonomyOf(set).Groups(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding taxonomy: %w", err)
		}
		return textResource(req, taxonomyURI, "application/json", string(data)), nil
	})
}

func textResource(req *sdkmcp.ReadResourceRequest, uri, mimeType, text string) *sdkmcp.ReadResourceResult {
	if req != nil && req.Params != nil && req.Params.URI != "" {
		uri = req.Params.URI
	}
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}
