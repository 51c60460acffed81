package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated    ActivityType = "project_created"
	TypeProjectUpdated    ActivityType = "project_updated"
	TypeProjectDeleted    ActivityType = "project_deleted"
	TypeProjectsImported  ActivityType = "projects_imported"
	TypeProjectEnhanced   ActivityType = "project_enhanced"
	TypeMatchAnalyzed     ActivityType = "match_analyzed"
	TypeMatchReanalyzed   ActivityType = "match_reanalyzed"
	TypeSelectionChanged  ActivityType = "selection_changed"
	TypeProposalGenerated ActivityType = "proposal_generated"
	TypeMatchDeleted      ActivityType = "match_deleted"
)

// ActivityEntry represents an event in a user's activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	SubjectID    string       `json:"subject_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
