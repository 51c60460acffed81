package match

import (
	"strings"
	"unicode/utf8"

	"github.com/rpggio/folio/internal/domain/project"
)

// MinRequirementsLength is the shortest trimmed requirements text worth
// sending for analysis.
const MinRequirementsLength = 10

// ResolveRecommendations joins recommendations with projects by id.
// Recommendations naming an unknown project are dropped.
func ResolveRecommendations(recs []Recommendation, projects []project.Project) []ResolvedRecommendation {
	byID := indexProjects(projects)
	out := make([]ResolvedRecommendation, 0, len(recs))
	for _, rec := range recs {
		p, ok := byID[rec.ProjectID]
		if !ok {
			continue
		}
		out = append(out, ResolvedRecommendation{Project: p, Reason: rec.Reason})
	}
	return out
}

// ToggleSelection removes id from selected when present and appends it
// otherwise. The input slice is not modified.
func ToggleSelection(selected []string, id string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// SelectedProjects returns the selected projects in selection order,
// skipping ids with no matching project.
func SelectedProjects(selected []string, projects []project.Project) []project.Project {
	byID := indexProjects(projects)
	out := make([]project.Project, 0, len(selected))
	for _, id := range selected {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// RecommendedIDs returns the distinct project ids of resolved
// recommendations in order.
func RecommendedIDs(resolved []ResolvedRecommendation) []string {
	ids := make([]string, 0, len(resolved))
	seen := make(map[string]struct{}, len(resolved))
	for _, r := range resolved {
		if _, dup := seen[r.Project.ID]; dup {
			continue
		}
		seen[r.Project.ID] = struct{}{}
		ids = append(ids, r.Project.ID)
	}
	return ids
}

// ValidateRequirements rejects requirements too short to analyze.
func ValidateRequirements(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinRequirementsLength {
		return ErrRequirementsTooShort
	}
	return nil
}

// ValidateProposal checks that a proposal can be generated for the selection.
func ValidateProposal(selected []string, sender SenderType, senderName string) error {
	if len(selected) == 0 {
		return ErrEmptySelection
	}
	switch sender {
	case SenderAgency:
	case SenderIndividual:
		if strings.TrimSpace(senderName) == "" {
			return ErrMissingSenderName
		}
	default:
		return ErrInvalidSenderType
	}
	return nil
}

// Event is a change applied to a match record.
type Event int

const (
	EventAnalyzed Event = iota
	EventReanalyzed
	EventSelectionChanged
	EventProposalGenerated
)

// NextStatus returns the status a record holds after ev. Any edit after a
// proposal invalidates it, so only proposal generation yields StatusProposed.
func NextStatus(ev Event) Status {
	switch ev {
	case EventAnalyzed:
		return StatusDraft
	case EventProposalGenerated:
		return StatusProposed
	default:
		return StatusSelected
	}
}

func indexProjects(projects []project.Project) map[string]project.Project {
	byID := make(map[string]project.Project, len(projects))
	for _, p := range projects {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	return byID
}
