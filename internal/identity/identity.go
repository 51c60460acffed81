// Package identity resolves who a request acts for.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// LocalUserID is the user id of single-user deployments and stdio sessions.
const LocalUserID = "local"

// GuestPrefix starts the user id of every guest identity.
const GuestPrefix = "guest:"

const maxGuestSessionLen = 128

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the user a request acts for. Ephemeral identities are served
// from process memory and lose their data on restart.
type Identity struct {
	UserID    string `json:"userId"`
	Ephemeral bool   `json:"ephemeral"`
}

// Guest is the anonymous identity of one client session. Each session gets
// its own user id, so guests never see each other's data. An empty or
// malformed session is replaced by a fresh random one.
func Guest(session string) Identity {
	if !ValidGuestSession(session) {
		session = uuid.NewString()
	}
	return Identity{UserID: GuestPrefix + session, Ephemeral: true}
}

// Local is the identity of a single-user deployment with authentication off.
func Local() Identity { return Identity{UserID: LocalUserID} }

// GuestSession returns the client session of a guest identity, or "".
func (i Identity) GuestSession() string {
	if !i.Ephemeral {
		return ""
	}
	return strings.TrimPrefix(i.UserID, GuestPrefix)
}

// ValidGuestSession reports whether s is usable as a guest session key.
// Sessions are short tokens of letters, digits, '-' and '_'.
func ValidGuestSession(s string) bool {
	if s == "" || len(s) > maxGuestSessionLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Resolver maps a bearer token to a user id.
type Resolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// Authenticator turns credentials into an identity.
type Authenticator struct {
	resolver       Resolver
	enabled        bool
	allowAnonymous bool
}

// NewAuthenticator creates an Authenticator. With enabled false every request
// is the Local identity. Otherwise a valid token is required unless
// allowAnonymous is set, in which case token-less requests become a Guest of
// their client session.
func NewAuthenticator(resolver Resolver, enabled, allowAnonymous bool) *Authenticator {
	return &Authenticator{resolver: resolver, enabled: enabled, allowAnonymous: allowAnonymous}
}

// Authenticate resolves the value of an Authorization header. guestSession
// identifies the client when the request carries no token and becomes part
// of the guest user id.
func (a *Authenticator) Authenticate(ctx context.Context, authorization, guestSession string) (Identity, error) {
	if !a.enabled {
		return Local(), nil
	}

	token := BearerToken(authorization)
	if token == "" {
		if a.allowAnonymous {
			return Guest(guestSession), nil
		}
		return Identity{}, ErrUnauthorized
	}
	if a.resolver == nil {
		return Identity{}, ErrUnauthorized
	}

	userID, err := a.resolver.ResolveUser(ctx, token)
	if err != nil || userID == "" {
		return Identity{}, ErrUnauthorized
	}
	return Identity{UserID: userID}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authorization string) string {
	authorization = strings.TrimSpace(authorization)
	const prefix = "bearer "
	if len(authorization) < len(prefix) || !strings.EqualFold(authorization[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authorization[len(prefix):])
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
