// Package testserver runs the full HTTP stack over an in-memory SQLite
// database for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/mcp"
	"github.com/rpggio/folio/internal/metrics"
	"github.com/rpggio/folio/internal/sqlite"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/rpggio/folio/internal/transport"
	"github.com/rpggio/folio/internal/workspace"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Token  string
	UserID string
}

// Option customizes the collaborators of a TestServer.
type Option func(*workspace.Deps)

// WithGenerator installs a generative-text service.
func WithGenerator(g workspace.Generator) Option {
	return func(d *workspace.Deps) { d.Generator = g }
}

// New starts a server with authentication enabled, anonymous guests allowed,
// and one API key issued for userID.
func New(t *testing.T, userID string, opts ...Option) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(context.Background()))

	deps := workspace.Deps{Taxonomy: taxonomy.Default()}
	for _, opt := range opts {
		opt(&deps)
	}
	set := workspace.NewSet(db, deps)

	keys := sqlite.NewAPIKeyRepository(db)
	auth := identity.NewAuthenticator(keys, true, true)

	mcpServer := mcp.NewServer(mcp.Config{
		Workspaces:    set,
		Authenticator: auth,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Workspaces:    set,
		Authenticator: auth,
		MCP:           mcpHandler,
		Metrics:       metrics.New(),
	}))

	token, err := keys.Create(context.Background(), userID, "test")
	require.NoError(t, err)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Token: token, UserID: userID}
}

// Client returns an HTTP client that sends token as a bearer credential. An
// empty token makes anonymous requests.
func (ts *TestServer) Client(token string) *http.Client {
	// Each client keeps its own cookies, so token-less clients are separate
	// guests.
	jar, _ := cookiejar.New(nil)
	return &http.Client{Jar: jar, Transport: bearerTransport{token: token, base: http.DefaultTransport}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if b.token == "" {
		return b.base.RoundTrip(r)
	}
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(r)
}
