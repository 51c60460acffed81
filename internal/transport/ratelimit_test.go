package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/folio/internal/identity"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 5)
	require.Nil(t, rl)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("anyone"))
	}
}

func TestRateLimiter_BurstPerKey(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"), "keys have separate buckets")

	now = now.Add(time.Second)
	require.True(t, rl.Allow("a"))
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(limiterIdle + time.Second)
	rl.Allow("b")
	require.Len(t, rl.visitors, 1)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(id identity.Identity, addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		req = req.WithContext(identity.WithIdentity(req.Context(), id))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	user := identity.Identity{UserID: "user1"}
	require.Equal(t, http.StatusOK, do(user, "10.0.0.1:1000"))
	require.Equal(t, http.StatusTooManyRequests, do(user, "10.0.0.2:1000"), "users are keyed by id, not address")

	require.Equal(t, http.StatusOK, do(identity.Guest("a"), "10.0.0.3:1000"))
	require.Equal(t, http.StatusTooManyRequests, do(identity.Guest("b"), "10.0.0.3:2000"), "guests are keyed by host, not session")
	require.Equal(t, http.StatusOK, do(identity.Guest("a"), "10.0.0.4:1000"))
}
