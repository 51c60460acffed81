package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/mcp"
)

const maxBodyBytes = 4 << 20

var errRateLimited = &mcp.APIError{
	Code:         "RATE_LIMITED",
	Message:      "too many requests",
	RecoveryHint: "Slow down and retry",
	Status:       http.StatusTooManyRequests,
}

type errorBody struct {
	Error *mcp.APIError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := mcp.MapError(err)
	writeJSON(w, apiErr.Status, errorBody{Error: apiErr})
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: malformed request body: %v", project.ErrInvalidInput, err)
	}
	return nil
}
