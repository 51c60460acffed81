package match

import "errors"

var (
	// ErrMatchNotFound indicates the match record doesn't exist.
	ErrMatchNotFound = errors.New("match record not found")
	// ErrRequirementsTooShort indicates requirements below the minimum length.
	ErrRequirementsTooShort = errors.New("requirements must be at least 10 characters")
	// ErrEmptySelection indicates a proposal request without selected projects.
	ErrEmptySelection = errors.New("select at least one project")
	// ErrMissingSenderName indicates an individual sender without a name.
	ErrMissingSenderName = errors.New("sender name is required for individual proposals")
	// ErrInvalidSenderType indicates a sender type other than Agency or Individual.
	ErrInvalidSenderType = errors.New("sender type must be Agency or Individual")
	// ErrNoProjects indicates there is nothing to recommend from.
	ErrNoProjects = errors.New("portfolio has no projects")
	// ErrStaleResult indicates the record changed while a generation was in flight.
	ErrStaleResult = errors.New("match record changed during generation")
	// ErrMalformedRecommendations indicates a generator reply without a
	// recommendations list.
	ErrMalformedRecommendations = errors.New("generator reply has no recommendations list")
	// ErrGeneratorUnavailable indicates no generative-text service is configured.
	ErrGeneratorUnavailable = errors.New("generative text service not configured")
)
