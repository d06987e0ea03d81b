package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/auth"
)

// ContextUserEmail is the gin context key the resolved identity is stored
// under for downstream handlers.
const ContextUserEmail = "user_email"

// Authenticate extracts the token from the request, resolves the caller
// identity and stores it in the context. Every validation failure gets the
// same unauthenticated response; the specific kind is only logged.
func Authenticate(tokens *auth.TokenService, transport *auth.SessionTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := transport.Extract(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}

		email, err := tokens.ResolveIdentity(token)
		if err != nil {
			var authErr *apperrors.AuthError
			if errors.As(err, &authErr) {
				log.Printf("token rejected: %s", authErr.Kind)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}

		c.Set(ContextUserEmail, email)
		c.Next()
	}
}
