package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
)

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	matches, err := ws.Matches.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]match.Summary{"matches": matches})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Requirements string `json:"requirements"`
		ClientName   string `json:"clientName"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	review, err := ws.Matches.Analyze(r.Context(), userID, match.AnalyzeRequest{
		Requirements: body.Requirements,
		ClientName:   body.ClientName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	review, err := ws.Matches.Review(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) deleteMatch(w http.ResponseWriter, r *http.Request) {
	ws, userID := s.scope(r)
	if err := ws.Matches.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reanalyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Requirements string `json:"requirements"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	review, err := ws.Matches.Reanalyze(r.Context(), userID, chi.URLParam(r, "id"), body.Requirements)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) toggleSelection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID string `json:"projectId"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	rec, err := ws.Matches.ToggleSelection(r.Context(), userID, chi.URLParam(r, "id"), body.ProjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) generateProposal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SenderType string  `json:"senderType"`
		SenderName string  `json:"senderName"`
		ClientName *string `json:"clientName"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	sender, err := match.ParseSenderType(body.SenderType)
	if err != nil {
		writeError(w, err)
		return
	}
	ws, userID := s.scope(r)
	rec, err := ws.Matches.GenerateProposal(r.Context(), userID, chi.URLParam(r, "id"), match.ProposalRequest{
		SenderType: sender,
		SenderName: body.SenderName,
		ClientName: body.ClientName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var opts activity.ListActivityOptions
	if v := q.Get("subject"); v != "" {
		opts.SubjectID = &v
	}
	if v := q.Get("type"); v != "" {
		typ := activity.ActivityType(v)
		opts.ActivityType = &typ
	}
	var err error
	if opts.Limit, err = intParam(q.Get("limit")); err != nil {
		writeError(w, err)
		return
	}
	if opts.Offset, err = intParam(q.Get("offset")); err != nil {
		writeError(w, err)
		return
	}

	ws, userID := s.scope(r)
	entries, err := ws.Activity.GetRecentActivity(r.Context(), userID, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, map[string][]activity.ActivityEntry{"entries": entries})
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", project.ErrInvalidInput, raw)
	}
	return n, nil
}
