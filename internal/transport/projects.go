package transport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/rpggio/folio/internal/workspace"
)

// scope returns the workspace and user id of the request identity.
func (s *Server) scope(r *http.Request) (*workspace.Workspace, string) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		id = identity.Guest("")
	}
	return s.workspaces.For(id), id.UserID
}

func (s *Server) taxonomy() *taxonomy.Taxonomy {
	if s.workspaces.Taxonomy != nil {
		return s.workspaces.Taxonomy
	}
	return taxonomy.Default()
}

type projectList struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	q := r.URL.Query()
	projects, err := ws.Projects.Filter(r.Context(), userID, project.FilterState{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectList{Projects: projects, Total: len(projects)})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req project.CreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	proj, err := ws.Projects.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	proj, err := ws.Projects.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

type updateProjectBody struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	Category     *project.Category `json:"category"`
	ProfileOwner *string           `json:"profileOwner"`
	Tags         []string          `json:"tags"`
	Links        []project.Link    `json:"links"`
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var body updateProjectBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	proj, err := ws.Projects.Update(r.Context(), userID, project.UpdateRequest{
		ID:           chi.URLParam(r, "id"),
		Name:         body.Name,
		Description:  body.Description,
		Category:     body.Category,
		ProfileOwner: body.ProfileOwner,
		Tags:         body.Tags,
		Links:        body.Links,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	if err := ws.Projects.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type idsBody struct {
	IDs  []string `json:"ids"`
	Tags []string `json:"tags,omitempty"`
}

func (s *Server) deleteProjects(w http.ResponseWriter, r *http.Request) {
	var body idsBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	n, err := ws.Projects.DeleteMany(r.Context(), userID, body.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

func (s *Server) tagProjects(w http.ResponseWriter, r *http.Request) {
	var body idsBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	projects, err := ws.Projects.AddTags(r.Context(), userID, body.IDs, body.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	writeJSON(w, http.StatusOK, projectList{Projects: projects, Total: len(projects)})
}

func (s *Server) enhanceProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Apply bool `json:"apply"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	out, err := ws.Projects.Enhance(r.Context(), userID, chi.URLParam(r, "id"), body.Apply)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) exportProjects(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	bundle, err := ws.Projects.Export(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="folio-%s.json"`, bundle.ExportedAt.Format("2006-01-02")))
	if err := project.EncodeBundle(w, bundle); err != nil && s.logger != nil {
		s.logger.Warn("failed to write export", "error", err)
	}
}

func (s *Server) importProjects(w http.ResponseWriter, r *http.Request) {
	bundle, err := project.DecodeBundle(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	result, err := ws.Projects.Import(r.Context(), userID, bundle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) importGitHub(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Account string `json:"account"`
		Save    bool   `json:"save"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	out, err := ws.Projects.ImportRepositories(r.Context(), userID, body.Account, body.Save)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if body.Save && len(out.Saved) > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, out)
}

type tagsBody struct {
	Tags []string `json:"tags"`
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	tags, err := ws.Projects.Tags(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagsBody{Tags: tags})
}

func (s *Server) getTaxonomy(w http.ResponseWriter, r *http.Request) {
	groups := s.taxonomy().Groups()
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		c, err := taxonomy.ParseCategory(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: %v", project.ErrInvalidInput, err))
			return
		}
		filtered := make([]taxonomy.Group, 0, 1)
		for _, g := range groups {
			if g.Category == c {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}
	writeJSON(w, http.StatusOK, map[string][]taxonomy.Group{"categories": groups})
}

func (s *Server) normalizeTags(w http.ResponseWriter, r *http.Request) {
	var body tagsBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagsBody{Tags: s.taxonomy().NormalizeAll(body.Tags)})
}
