package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/storefront-labs/storefront-api/config"
)

// SessionTransport moves the encoded token between client and server. It
// never looks inside the token; cookie and bearer header are both accepted
// so browser and API clients share the same routes.
type SessionTransport struct {
	cookieName string
	lifetime   time.Duration
}

func NewSessionTransport(cfg config.Config) *SessionTransport {
	return &SessionTransport{
		cookieName: cfg.JWTCookieName,
		lifetime:   cfg.JWTLifetime,
	}
}

// Cookie wraps a token for Set-Cookie; the max-age matches the token
// lifetime so the browser drops the credential when it stops validating.
func (t *SessionTransport) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     t.cookieName,
		Value:    token,
		Path:     "/api",
		MaxAge:   int(t.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie tells the client to discard the credential. The token itself
// stays valid until its natural expiry.
func (t *SessionTransport) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     t.cookieName,
		Value:    "",
		Path:     "/api",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// BearerHeader formats the token as an Authorization header value.
func (t *SessionTransport) BearerHeader(token string) string {
	return "Bearer " + token
}

// Extract pulls the token off a request: session cookie first, then the
// Authorization bearer header. Empty string means no credential present.
func (t *SessionTransport) Extract(r *http.Request) string {
	if c, err := r.Cookie(t.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
