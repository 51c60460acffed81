package mcp

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/github"
	"github.com/rpggio/folio/internal/identity"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{fmt.Errorf("get: %w", project.ErrProjectNotFound), "PROJECT_NOT_FOUND", http.StatusNotFound},
		{match.ErrMatchNotFound, "MATCH_NOT_FOUND", http.StatusNotFound},
		{fmt.Errorf("%w: name is required", project.ErrInvalidInput), "INVALID_INPUT", http.StatusBadRequest},
		{project.ErrInvalidLink, "INVALID_INPUT", http.StatusBadRequest},
		{match.ErrRequirementsTooShort, "VALIDATION_FAILED", http.StatusUnprocessableEntity},
		{match.ErrStaleResult, "STALE_RESULT", http.StatusConflict},
		{match.ErrGeneratorUnavailable, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{fmt.Errorf("listing: %w", github.ErrRateLimited), "RATE_LIMITED", http.StatusTooManyRequests},
		{github.ErrAccountNotFound, "ACCOUNT_NOT_FOUND", http.StatusNotFound},
		{match.ErrMalformedRecommendations, "GENERATION_FAILED", http.StatusBadGateway},
		{identity.ErrUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized},
		{errors.New("disk on fire"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapError(tt.err)
			require.Equal(t, tt.code, got.Code)
			require.Equal(t, tt.status, got.Status)
			require.NotEmpty(t, got.Message)
		})
	}

	require.Nil(t, MapError(nil))

	own := &APIError{Code: "CUSTOM", Message: "custom", Status: http.StatusTeapot}
	require.Same(t, own, MapError(fmt.Errorf("wrapped: %w", own)))
}
