package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/auth"
	"github.com/storefront-labs/storefront-api/cart"
	cartControllers "github.com/storefront-labs/storefront-api/controllers/cart"
	userControllers "github.com/storefront-labs/storefront-api/controllers/user"
	"github.com/storefront-labs/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected cart and profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB,
	tokens *auth.TokenService, transport *auth.SessionTransport, engine *cart.Engine) {

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Authenticate(tokens, transport))
	{
		// ──────────────── Shopping Cart ────────────────
		apiGroup.POST("/carts/products/:productId/quantity/:quantity", cartControllers.AddProductToCart(engine))
		apiGroup.GET("/carts", cartControllers.GetAllCarts(engine))
		apiGroup.GET("/carts/users/cart", cartControllers.GetUserCart(engine))
		apiGroup.DELETE("/carts/users/cart", cartControllers.ClearCart(engine))
		apiGroup.PUT("/cart/products/:productId/quantity/:operation", cartControllers.UpdateProductQuantity(engine))
		apiGroup.DELETE("/carts/:cartId/product/:productId", cartControllers.DeleteProductFromCart(engine))

		// ──────────────── Profile ────────────────
		apiGroup.GET("/users/me", userControllers.GetMe(db))
	}
}
