package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/identity"
)

// guestSessionHeader matches the REST API header, so a browser client can
// share one guest workspace across both surfaces.
const guestSessionHeader = "X-Guest-Session"

// userID extracts the acting user id from context.
func userID(ctx context.Context) string {
	id, _ := identity.FromContext(ctx)
	return id.UserID
}

// authMiddleware resolves the identity of HTTP requests from their bearer
// token. Token-less guests are keyed by their MCP session, so each connected
// client gets its own workspace.
func authMiddleware(auth *identity.Authenticator) sdkmcp.Middleware {
	guests := &guestSessions{}
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Protocol methods carry no user data.
			if method == "initialize" || method == "ping" || method == "notifications/initialized" {
				return next(ctx, method, req)
			}

			var header, guest string
			if extra := req.GetExtra(); extra != nil && extra.Header != nil {
				header = extra.Header.Get("Authorization")
				guest = extra.Header.Get(guestSessionHeader)
			}
			if !identity.ValidGuestSession(guest) {
				guest = guests.key(req)
			}

			id, err := auth.Authenticate(ctx, header, guest)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", method, err)
			}
			return next(identity.WithIdentity(ctx, id), method, req)
		}
	}
}

// fixedIdentityMiddleware injects one identity for every request. Stdio
// sessions belong to the local user.
func fixedIdentityMiddleware(id identity.Identity) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			return next(identity.WithIdentity(ctx, id), method, req)
		}
	}
}

// guestSessions names the guest of an MCP connection: its transport session
// id, or a random key held for the connection's lifetime when the transport
// has none.
type guestSessions struct {
	keys sync.Map // *sdkmcp.ServerSession -> string
}

func (g *guestSessions) key(req sdkmcp.Request) string {
	if id := safeSessionID(req); identity.ValidGuestSession(id) {
		return id
	}
	ss := safeServerSession(req)
	if ss == nil {
		return ""
	}
	if v, ok := g.keys.Load(ss); ok {
		return v.(string)
	}
	v, loaded := g.keys.LoadOrStore(ss, uuid.NewString())
	if !loaded {
		go func() {
			_ = ss.Wait()
			g.keys.Delete(ss)
		}()
	}
	return v.(string)
}
