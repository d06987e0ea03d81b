package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/auth"
	"github.com/storefront-labs/storefront-api/cart"
	"github.com/storefront-labs/storefront-api/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the auth, public,
// user, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config,
	tokens *auth.TokenService, transport *auth.SessionTransport, engine *cart.Engine) {

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, tokens, transport)

	// Public catalog reads
	SetupPublicRoutes(r, db)

	// JWT-protected user routes (carts, profile)
	SetupUserRoutes(r, db, tokens, transport, engine)

	// API-key-protected admin routes
	SetupAdminRoutes(r, db, cfg, engine)
}
