package match

import (
	"strings"
	"time"

	"github.com/rpggio/folio/internal/domain/project"
)

// Status is the lifecycle state of a match record.
type Status string

const (
	// StatusDraft: requirements analyzed, recommendations attached.
	StatusDraft Status = "draft"
	// StatusSelected: the selection was edited or the record re-analyzed.
	StatusSelected Status = "selected"
	// StatusProposed: a proposal matching the current selection is attached.
	StatusProposed Status = "proposed"
)

// SenderType is the persona a proposal is written as.
type SenderType string

const (
	SenderAgency     SenderType = "Agency"
	SenderIndividual SenderType = "Individual"
)

// ParseSenderType resolves a sender type regardless of case. Empty input
// defaults to Agency.
func ParseSenderType(s string) (SenderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "agency":
		return SenderAgency, nil
	case "individual":
		return SenderIndividual, nil
	default:
		return "", ErrInvalidSenderType
	}
}

// Recommendation is one generated (project, reason) pair.
type Recommendation struct {
	ProjectID string `json:"projectId"`
	Reason    string `json:"reason"`
}

// ResolvedRecommendation joins a recommendation with its project.
type ResolvedRecommendation struct {
	Project project.Project `json:"project"`
	Reason  string          `json:"reason"`
}

// Record captures one requirements query, its recommendations, the user's
// selection and any generated proposal.
type Record struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"userId,omitempty"`
	Timestamp          time.Time        `json:"timestamp"`
	Requirements       string           `json:"requirements"`
	Recommendations    []Recommendation `json:"recommendations"`
	SelectedProjectIDs []string         `json:"selectedProjectIds"`
	ClientName         string           `json:"clientName"`
	Proposal           string           `json:"proposal,omitempty"`
	SenderType         SenderType       `json:"senderType"`
	SenderName         string           `json:"senderName,omitempty"`
	Status             Status           `json:"status"`
	Revision           int64            `json:"revision"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// Summary is a lightweight listing of a match record.
type Summary struct {
	ID                  string    `json:"id"`
	Timestamp           time.Time `json:"timestamp"`
	ClientName          string    `json:"clientName"`
	Requirements        string    `json:"requirements"`
	Status              Status    `json:"status"`
	RecommendationCount int       `json:"recommendationCount"`
	SelectedCount       int       `json:"selectedCount"`
	HasProposal         bool      `json:"hasProposal"`
}

// Summarize returns the listing form of r.
func (r Record) Summarize() Summary {
	return Summary{
		ID:                  r.ID,
		Timestamp:           r.Timestamp,
		ClientName:          r.ClientName,
		Requirements:        r.Requirements,
		Status:              r.Status,
		RecommendationCount: len(r.Recommendations),
		SelectedCount:       len(r.SelectedProjectIDs),
		HasProposal:         r.Proposal != "",
	}
}

// Review is a match record joined against the live project collection.
type Review struct {
	Record          *Record                  `json:"record"`
	Recommendations []ResolvedRecommendation `json:"recommendations"`
	Selected        []project.Project        `json:"selected"`
}
