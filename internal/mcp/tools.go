package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/rpggio/folio/internal/workspace"
)

// toolFunc runs one tool against the workspace of the calling identity.
type toolFunc[In any] func(ctx context.Context, ws *workspace.Workspace, userID string, in In) (any, error)

func addTool[In any](server *sdkmcp.Server, set *workspace.Set, name, description string, fn toolFunc[In]) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			id, ok := identity.FromContext(ctx)
			if !ok {
				return errorResult(MapError(identity.ErrUnauthorized)), nil, nil
			}
			out, err := fn(ctx, set.For(id), id.UserID, in)
			if err != nil {
				return errorResult(MapError(err)), nil, nil
			}
			return jsonResult(out)
		})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult reports a domain failure as a tool error so the model can read
// the code and recovery hint.
func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, err := json.Marshal(map[string]*APIError{"error": apiErr})
	if err != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func registerTools(server *sdkmcp.Server, set *workspace.Set) {
	registerProjectTools(server, set)
	registerTagTools(server, set)
	registerMatchTools(server, set)

	addTool(server, set, "get_recent_activity", "List recent portfolio activity, newest first",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in GetRecentActivityParams) (any, error) {
			opts := activity.ListActivityOptions{Limit: in.Limit, Offset: in.Offset}
			if in.SubjectID != "" {
				opts.SubjectID = &in.SubjectID
			}
			if in.Type != "" {
				typ := activity.ActivityType(in.Type)
				opts.ActivityType = &typ
			}
			entries, err := ws.Activity.GetRecentActivity(ctx, userID, opts)
			if err != nil {
				return nil, err
			}
			if entries == nil {
				entries = []activity.ActivityEntry{}
			}
			return ActivityResponse{Entries: entries}, nil
		})
}

func registerProjectTools(server *sdkmcp.Server, set *workspace.Set) {
	addTool(server, set, "list_projects", "List projects matching every given filter, most recently modified first",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in ListProjectsParams) (any, error) {
			projects, err := ws.Projects.Filter(ctx, userID, project.FilterState{
				Search:   in.Search,
				Category: in.Category,
				Tag:      in.Tag,
			})
			if err != nil {
				return nil, err
			}
			return ProjectListResponse{Projects: projects, Total: len(projects)}, nil
		})

	addTool(server, set, "get_project", "Get a project by id",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in GetProjectParams) (any, error) {
			return ws.Projects.Get(ctx, userID, in.ID)
		})

	addTool(server, set, "create_project", "Create a project. Tags are normalized onto the taxonomy",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in CreateProjectParams) (any, error) {
			return ws.Projects.Create(ctx, userID, project.CreateRequest{
				Name:         in.Name,
				Description:  in.Description,
				Category:     project.Category(in.Category),
				ProfileOwner: in.ProfileOwner,
				Tags:         in.Tags,
				Links:        links(in.Links),
			})
		})

	addTool(server, set, "update_project", "Update the given fields of a project",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in UpdateProjectParams) (any, error) {
			req := project.UpdateRequest{
				ID:           in.ID,
				Name:         in.Name,
				Description:  in.Description,
				ProfileOwner: in.ProfileOwner,
				Tags:         in.Tags,
				Links:        links(in.Links),
			}
			if in.Category != nil {
				c := project.Category(*in.Category)
				req.Category = &c
			}
			return ws.Projects.Update(ctx, userID, req)
		})

	addTool(server, set, "delete_projects", "Delete projects by id. Unknown ids are ignored",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in DeleteProjectsParams) (any, error) {
			n, err := ws.Projects.DeleteMany(ctx, userID, in.IDs)
			if err != nil {
				return nil, err
			}
			return DeleteProjectsResponse{Deleted: n}, nil
		})

	addTool(server, set, "tag_projects", "Add tags to several projects",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in TagProjectsParams) (any, error) {
			projects, err := ws.Projects.AddTags(ctx, userID, in.IDs, in.Tags)
			if err != nil {
				return nil, err
			}
			if projects == nil {
				projects = []project.Project{}
			}
			return ProjectListResponse{Projects: projects, Total: len(projects)}, nil
		})

	addTool(server, set, "enhance_project", "Suggest a better description and tags for a project",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in EnhanceProjectParams) (any, error) {
			return ws.Projects.Enhance(ctx, userID, in.ID, in.Apply)
		})

	addTool(server, set, "import_github", "List a GitHub account's public repositories as draft projects",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in ImportGitHubParams) (any, error) {
			return ws.Projects.ImportRepositories(ctx, userID, in.Account, in.Save)
		})
}

func registerTagTools(server *sdkmcp.Server, set *workspace.Set) {
	addTool(server, set, "list_tags", "List every tag in use across the portfolio, sorted",
		func(ctx context.Context, ws *workspace.Workspace, userID string, _ EmptyParams) (any, error) {
			tags, err := ws.Projects.Tags(ctx, userID)
			if err != nil {
				return nil, err
			}
			return TagsResponse{Tags: tags}, nil
		})

	addTool(server, set, "normalize_tags", "Resolve free-text tags onto canonical tags without storing anything",
		func(_ context.Context, _ *workspace.Workspace, _ string, in NormalizeTagsParams) (any, error) {
			return TagsResponse{Tags: taxonomyOf(set).NormalizeAll(in.Tags)}, nil
		})

	addTool(server, set, "get_taxonomy", "List canonical tags grouped by category",
		func(_ context.Context, _ *workspace.Workspace, _ string, in GetTaxonomyParams) (any, error) {
			view := taxonomyOf(set).Groups()
			if strings.TrimSpace(in.Category) == "" {
				return TaxonomyResponse{Categories: view}, nil
			}
			c, err := taxonomy.ParseCategory(in.Category)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", project.ErrInvalidInput, err)
			}
			for _, v := range view {
				if v.Category == c {
					return TaxonomyResponse{Categories: []taxonomy.Group{v}}, nil
				}
			}
			return TaxonomyResponse{Categories: []taxonomy.Group{}}, nil
		})
}

func registerMatchTools(server *sdkmcp.Server, set *workspace.Set) {
	addTool(server, set, "analyze_requirements", "Recommend portfolio projects for a client brief and start a match",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in AnalyzeRequirementsParams) (any, error) {
			return ws.Matches.Analyze(ctx, userID, match.AnalyzeRequest{
				Requirements: in.Requirements,
				ClientName:   in.ClientName,
			})
		})

	addTool(server, set, "reanalyze_match", "Replace a match's requirements and recommendations",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in ReanalyzeMatchParams) (any, error) {
			return ws.Matches.Reanalyze(ctx, userID, in.MatchID, in.Requirements)
		})

	addTool(server, set, "toggle_selection", "Add a project to a match's selection, or remove it if already selected",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in ToggleSelectionParams) (any, error) {
			return ws.Matches.ToggleSelection(ctx, userID, in.MatchID, in.ProjectID)
		})

	addTool(server, set, "generate_proposal", "Write a proposal presenting the selected projects",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in GenerateProposalParams) (any, error) {
			sender, err := match.ParseSenderType(in.SenderType)
			if err != nil {
				return nil, err
			}
			return ws.Matches.GenerateProposal(ctx, userID, in.MatchID, match.ProposalRequest{
				SenderType: sender,
				SenderName: in.SenderName,
				ClientName: in.ClientName,
			})
		})

	addTool(server, set, "get_match", "Get a match with its recommendations resolved against current projects",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in MatchIDParams) (any, error) {
			return ws.Matches.Review(ctx, userID, in.MatchID)
		})

	addTool(server, set, "list_matches", "List matches, newest first",
		func(ctx context.Context, ws *workspace.Workspace, userID string, _ EmptyParams) (any, error) {
			matches, err := ws.Matches.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			return MatchListResponse{Matches: matches}, nil
		})

	addTool(server, set, "delete_match", "Delete a match",
		func(ctx context.Context, ws *workspace.Workspace, userID string, in MatchIDParams) (any, error) {
			if err := ws.Matches.Delete(ctx, userID, in.MatchID); err != nil {
				return nil, err
			}
			return DeletedResponse{Deleted: true}, nil
		})
}

func taxonomyOf(set *workspace.Set) *taxonomy.Taxonomy {
	if set.Taxonomy != nil {
		return set.Taxonomy
	}
	return taxonomy.Default()
}
