package match

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/repository"
)

// Service runs the match record lifecycle: analyze requirements, review and
// select recommendations, generate a proposal.
type Service struct {
	records    Repository
	projects   ProjectSource
	generator  Generator
	activities activity.Sink
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new match service. generator may be nil, in which
// case generation operations fail with ErrGeneratorUnavailable.
func NewService(records Repository, projects ProjectSource, generator Generator, activities activity.Sink, logger *slog.Logger) *Service {
	return &Service{
		records:    records,
		projects:   projects,
		generator:  generator,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// AnalyzeRequest describes a new requirements analysis.
type AnalyzeRequest struct {
	Requirements string
	ClientName   string
}

// ProposalRequest describes proposal generation inputs.
type ProposalRequest struct {
	SenderType SenderType
	SenderName string
	// ClientName replaces the stored client name when non-nil.
	ClientName *string
}

// Analyze requests recommendations for requirements and stores them as a new
// draft record. Every resolved recommendation starts out selected.
func (s *Service) Analyze(ctx context.Context, userID string, req AnalyzeRequest) (*Review, error) {
	if err := ValidateRequirements(req.Requirements); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	requirements := strings.TrimSpace(req.Requirements)
	clientName := strings.TrimSpace(req.ClientName)

	projects, resolved, err := s.recommend(ctx, userID, requirements, clientName)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := &Record{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Timestamp:          now,
		Requirements:       requirements,
		Recommendations:    unresolve(resolved),
		SelectedProjectIDs: RecommendedIDs(resolved),
		ClientName:         clientName,
		SenderType:         SenderAgency,
		Status:             NextStatus(EventAnalyzed),
		Revision:           1,
		UpdatedAt:          now,
	}
	if err := s.records.Create(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("creating match record: %w", err)
	}

	s.record(ctx, userID, activity.TypeMatchAnalyzed, rec.ID,
		fmt.Sprintf("analyzed requirements, %d recommendations", len(resolved)), nil)

	return &Review{
		Record:          rec,
		Recommendations: resolved,
		Selected:        SelectedProjects(rec.SelectedProjectIDs, projects),
	}, nil
}

// Reanalyze replaces the requirements of a record and analyzes them again.
// The previous recommendations, selection and proposal are discarded.
func (s *Service) Reanalyze(ctx context.Context, userID, id, requirements string) (*Review, error) {
	if err := ValidateRequirements(requirements); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	requirements = strings.TrimSpace(requirements)
	projects, resolved, err := s.recommend(ctx, userID, requirements, current.ClientName)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Requirements = requirements
	updated.Recommendations = unresolve(resolved)
	updated.SelectedProjectIDs = RecommendedIDs(resolved)
	updated.Proposal = ""
	updated.Status = NextStatus(EventReanalyzed)
	updated.Timestamp = s.now()

	if err := s.commit(ctx, userID, &updated, current.Revision); err != nil {
		return nil, err
	}

	s.record(ctx, userID, activity.TypeMatchReanalyzed, updated.ID,
		fmt.Sprintf("re-analyzed requirements, %d recommendations", len(resolved)), nil)

	return &Review{
		Record:          &updated,
		Recommendations: resolved,
		Selected:        SelectedProjects(updated.SelectedProjectIDs, projects),
	}, nil
}

// ToggleSelection adds or removes a project from the record's selection.
// Any existing proposal is cleared since it no longer matches the selection.
func (s *Service) ToggleSelection(ctx context.Context, userID, id, projectID string) (*Record, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, project.ErrInvalidInput
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	adding := !contains(current.SelectedProjectIDs, projectID)
	if adding {
		projects, err := s.listProjects(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(SelectedProjects([]string{projectID}, projects)) == 0 {
			return nil, project.ErrProjectNotFound
		}
	}

	updated := *current
	updated.SelectedProjectIDs = ToggleSelection(current.SelectedProjectIDs, projectID)
	updated.Proposal = ""
	updated.Status = NextStatus(EventSelectionChanged)

	if err := s.commit(ctx, userID, &updated, current.Revision); err != nil {
		return nil, err
	}

	verb := "deselected"
	if adding {
		verb = "selected"
	}
	s.record(ctx, userID, activity.TypeSelectionChanged, updated.ID,
		fmt.Sprintf("%s project %s", verb, projectID), map[string]string{"project_id": projectID})
	return &updated, nil
}

// GenerateProposal drafts a proposal for the selected projects. A failed
// generation leaves the stored record, including any earlier proposal,
// untouched.
func (s *Service) GenerateProposal(ctx context.Context, userID, id string, req ProposalRequest) (*Record, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sender := req.SenderType
	if sender == "" {
		sender = SenderAgency
	}
	if err := ValidateProposal(current.SelectedProjectIDs, sender, req.SenderName); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	projects, err := s.listProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	selected := SelectedProjects(current.SelectedProjectIDs, projects)
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	updated := *current
	updated.SenderType = sender
	updated.SenderName = strings.TrimSpace(req.SenderName)
	if req.ClientName != nil {
		updated.ClientName = strings.TrimSpace(*req.ClientName)
	}

	text, err := s.generator.GenerateText(ctx, proposalPrompt(&updated, selected))
	if err != nil {
		return nil, fmt.Errorf("generating proposal: %w", err)
	}

	updated.Proposal = strings.TrimSpace(text)
	updated.Status = NextStatus(EventProposalGenerated)

	if err := s.commit(ctx, userID, &updated, current.Revision); err != nil {
		return nil, err
	}

	s.record(ctx, userID, activity.TypeProposalGenerated, updated.ID,
		fmt.Sprintf("generated proposal for %d projects", len(selected)), nil)
	return &updated, nil
}

// Get fetches a match record.
func (s *Service) Get(ctx context.Context, userID, id string) (*Record, error) {
	rec, err := s.records.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("getting match record: %w", err)
	}
	return rec, nil
}

// Review joins a match record against the current projects.
func (s *Service) Review(ctx context.Context, userID, id string) (*Review, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	projects, err := s.listProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Review{
		Record:          rec,
		Recommendations: ResolveRecommendations(rec.Recommendations, projects),
		Selected:        SelectedProjects(rec.SelectedProjectIDs, projects),
	}, nil
}

// List returns summaries of a user's match records, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	records, err := s.records.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing match records: %w", err)
	}
	out := make([]Summary, 0, len(records))
	for _, r := range records {
		out = append(out, r.Summarize())
	}
	return out, nil
}

// Delete removes a match record.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.records.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("deleting match record: %w", err)
	}
	s.record(ctx, userID, activity.TypeMatchDeleted, id, fmt.Sprintf("deleted match record %s", id), nil)
	return nil
}

type recommendationResponse struct {
	Recommendations []Recommendation
	present         bool
}

// UnmarshalJSON accepts the requested {"recommendations": [...]} object and a
// bare array of recommendations. An object without the key decodes without
// error but leaves present unset.
func (r *recommendationResponse) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &r.Recommendations); err != nil {
			return err
		}
		r.present = true
		return nil
	}

	var obj struct {
		Recommendations *[]Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Recommendations != nil {
		r.Recommendations = *obj.Recommendations
		r.present = true
	}
	return nil
}

func (s *Service) recommend(ctx context.Context, userID, requirements, clientName string) ([]project.Project, []ResolvedRecommendation, error) {
	projects, err := s.listProjects(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(projects) == 0 {
		return nil, nil, ErrNoProjects
	}

	var resp recommendationResponse
	if err := s.generator.GenerateStructured(ctx, recommendationPrompt(requirements, clientName, projects), &resp); err != nil {
		return nil, nil, fmt.Errorf("requesting recommendations: %w", err)
	}
	if !resp.present {
		return nil, nil, ErrMalformedRecommendations
	}

	resolved := ResolveRecommendations(resp.Recommendations, projects)
	if dropped := len(resp.Recommendations) - len(resolved); dropped > 0 && s.logger != nil {
		s.logger.Debug("dropped recommendations for unknown projects", "dropped", dropped)
	}
	return projects, resolved, nil
}

// commit writes rec if it is still at expectedRevision.
func (s *Service) commit(ctx context.Context, userID string, rec *Record, expectedRevision int64) error {
	rec.Revision = expectedRevision + 1
	rec.UpdatedAt = s.now()
	if err := s.records.Update(ctx, userID, rec, expectedRevision); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return ErrStaleResult
		case errors.Is(err, repository.ErrNotFound):
			return ErrMatchNotFound
		}
		return fmt.Errorf("updating match record: %w", err)
	}
	return nil
}

func (s *Service) listProjects(ctx context.Context, userID string) ([]project.Project, error) {
	projects, err := s.projects.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *Service) record(ctx context.Context, userID string, typ activity.ActivityType, subjectID, summary string, details any) {
	entry := &activity.ActivityEntry{
		SubjectID:    subjectID,
		ActivityType: typ,
		Summary:      summary,
	}
	if details != nil {
		entry.Details = activity.Details(details)
	}
	activity.Record(ctx, s.activities, s.logger, userID, entry)
}

func unresolve(resolved []ResolvedRecommendation) []Recommendation {
	out := make([]Recommendation, 0, len(resolved))
	for _, r := range resolved {
		out = append(out, Recommendation{ProjectID: r.Project.ID, Reason: r.Reason})
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
