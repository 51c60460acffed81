package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/workspace"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Config contains server configuration.
type Config struct {
	Workspaces    *workspace.Set
	Authenticator *identity.Authenticator
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "folio",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)
	registerTaxonomyResource(server, cfg.Workspaces)

	// Stdio is a local process: there are no headers to authenticate.
	identityMW := fixedIdentityMiddleware(identity.Local())
	if cfg.TransportMode != "stdio" && cfg.Authenticator != nil {
		identityMW = authMiddleware(cfg.Authenticator)
	}
	// The first middleware runs first, so traffic logs see the identity.
	server.AddReceivingMiddleware(identityMW, trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Workspaces)

	return server
}
