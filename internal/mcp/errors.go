package mcp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpggio/folio/internal/ai"
	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/github"
	"github.com/rpggio/folio/internal/identity"
)

// APIError is the error payload returned by tools and by the HTTP API.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	// Status is the HTTP status the error maps to.
	Status int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain and collaborator errors to API errors. Unknown errors
// become INTERNAL_ERROR.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, identity.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "missing or invalid API key", RecoveryHint: "Send Authorization: Bearer <key>", Status: http.StatusUnauthorized}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids", Status: http.StatusNotFound}
	case errors.Is(err, match.ErrMatchNotFound):
		return &APIError{Code: "MATCH_NOT_FOUND", Message: "match record not found", RecoveryHint: "Call list_matches for valid ids", Status: http.StatusNotFound}
	case errors.Is(err, github.ErrAccountNotFound):
		return &APIError{Code: "ACCOUNT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the account name", Status: http.StatusNotFound}
	case errors.Is(err, project.ErrDuplicateProject):
		return &APIError{Code: "DUPLICATE_PROJECT", Message: "project already exists", RecoveryHint: "Omit the id to generate one", Status: http.StatusConflict}
	case errors.Is(err, match.ErrStaleResult):
		return &APIError{Code: "STALE_RESULT", Message: err.Error(), RecoveryHint: "Fetch the match again and retry", Status: http.StatusConflict}
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidCategory),
		errors.Is(err, project.ErrInvalidLink),
		errors.Is(err, project.ErrInvalidBundle):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), Status: http.StatusBadRequest}
	case errors.Is(err, match.ErrRequirementsTooShort),
		errors.Is(err, match.ErrEmptySelection),
		errors.Is(err, match.ErrMissingSenderName),
		errors.Is(err, match.ErrInvalidSenderType),
		errors.Is(err, match.ErrNoProjects):
		return &APIError{Code: "VALIDATION_FAILED", Message: err.Error(), Status: http.StatusUnprocessableEntity}
	case errors.Is(err, project.ErrGeneratorUnavailable),
		errors.Is(err, match.ErrGeneratorUnavailable),
		errors.Is(err, project.ErrSourceUnavailable):
		return &APIError{Code: "SERVICE_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Configure the service and restart", Status: http.StatusServiceUnavailable}
	case errors.Is(err, github.ErrRateLimited):
		return &APIError{Code: "RATE_LIMITED", Message: err.Error(), RecoveryHint: "Wait before importing again", Status: http.StatusTooManyRequests}
	case ai.IsTransient(err):
		return &APIError{Code: "GENERATION_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Try again shortly", Status: http.StatusServiceUnavailable}
	case ai.IsFatal(err),
		errors.Is(err, ai.ErrEmptyResponse),
		errors.Is(err, ai.ErrMalformedResponse),
		errors.Is(err, match.ErrMalformedRecommendations):
		return &APIError{Code: "GENERATION_FAILED", Message: err.Error(), Status: http.StatusBadGateway}
	default:
		return &APIError{Code: "INTERNAL_ERROR", Message: err.Error(), Status: http.StatusInternalServerError}
	}
}
