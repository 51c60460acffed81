package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveExternal(t *testing.T) {
	m := New()
	start := time.Now()

	m.ObserveExternal("genai", "generate_text", start, nil)
	m.ObserveExternal("genai", "generate_text", start, errors.New("boom"))
	m.ObserveExternal("genai", "generate_text", start, nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.externalCalls.WithLabelValues("genai", "generate_text", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.externalCalls.WithLabelValues("genai", "generate_text", "error")))
	require.Equal(t, 1, testutil.CollectAndCount(m.externalDuration))
}

func TestObserveHTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP("/api/projects", http.MethodGet, http.StatusOK, time.Now())
	m.ObserveHTTP("", http.MethodGet, http.StatusNotFound, time.Now())

	require.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/projects", "GET", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveExternal("github", "list_repositories", time.Now(), nil)
	m.ObserveHTTP("/health", http.MethodGet, http.StatusOK, time.Now())
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveExternal("github", "list_repositories", time.Now(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "folio_external_calls_total"))
}
