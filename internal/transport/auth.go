package transport

import (
	"net/http"

	"github.com/rpggio/folio/internal/identity"
)

const (
	// GuestSessionHeader carries the guest session of token-less clients.
	GuestSessionHeader = "X-Guest-Session"
	// GuestSessionCookie is the cookie alternative to GuestSessionHeader.
	GuestSessionCookie = "folio_guest"
)

// AuthMiddleware resolves the request identity from its bearer token. A nil
// authenticator serves every request as the local user.
//
// Token-less requests become guests of the session named by the
// X-Guest-Session header or the folio_guest cookie. A new session is minted
// when neither is present and returned in both, so the client can keep using
// its workspace.
func AuthMiddleware(auth *identity.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identity.Local()
			if auth != nil {
				var err error
				id, err = auth.Authenticate(r.Context(), r.Header.Get("Authorization"), requestGuestSession(r))
				if err != nil {
					writeError(w, err)
					return
				}
			}
			if session := id.GuestSession(); session != "" {
				w.Header().Set(GuestSessionHeader, session)
				if c, err := r.Cookie(GuestSessionCookie); err != nil || c.Value != session {
					http.SetCookie(w, &http.Cookie{
						Name:     GuestSessionCookie,
						Value:    session,
						Path:     "/",
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}

func requestGuestSession(r *http.Request) string {
	if s := r.Header.Get(GuestSessionHeader); identity.ValidGuestSession(s) {
		return s
	}
	if c, err := r.Cookie(GuestSessionCookie); err == nil && identity.ValidGuestSession(c.Value) {
		return c.Value
	}
	return ""
}
