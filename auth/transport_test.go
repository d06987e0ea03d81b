package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/storefront-labs/storefront-api/config"
	"github.com/stretchr/testify/assert"
)

func newTestTransport() *SessionTransport {
	return NewSessionTransport(config.Config{
		JWTCookieName: "storefront_jwt",
		JWTLifetime:   24 * time.Hour,
	})
}

func TestCookieAttributes(t *testing.T) {
	transport := newTestTransport()

	cookie := transport.Cookie("token-value")
	assert.Equal(t, "storefront_jwt", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/api", cookie.Path)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestClearCookieDiscardsCredential(t *testing.T) {
	transport := newTestTransport()

	cookie := transport.ClearCookie()
	assert.Empty(t, cookie.Value)
	assert.Equal(t, "/api", cookie.Path)
	assert.Negative(t, cookie.MaxAge)
}

func TestExtractPrefersCookieOverHeader(t *testing.T) {
	transport := newTestTransport()

	req := httptest.NewRequest("GET", "/api/carts", nil)
	req.AddCookie(transport.Cookie("cookie-token"))
	req.Header.Set("Authorization", transport.BearerHeader("header-token"))

	assert.Equal(t, "cookie-token", transport.Extract(req))
}

func TestExtractBearerHeader(t *testing.T) {
	transport := newTestTransport()

	req := httptest.NewRequest("GET", "/api/carts", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", transport.Extract(req))
}

func TestExtractMissingCredential(t *testing.T) {
	transport := newTestTransport()

	req := httptest.NewRequest("GET", "/api/carts", nil)
	assert.Empty(t, transport.Extract(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, transport.Extract(req))
}
