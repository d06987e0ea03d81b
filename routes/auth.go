package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB,
	tokens *auth.TokenService, transport *auth.SessionTransport) {

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", auth.Signup(db))                     // POST /api/auth/signup
		authGroup.POST("/signin", auth.Signin(db, tokens, transport))  // POST /api/auth/signin
		authGroup.POST("/signout", auth.Signout(transport))            // POST /api/auth/signout
	}
}
