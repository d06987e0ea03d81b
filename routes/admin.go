package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/cart"
	"github.com/storefront-labs/storefront-api/config"
	adminControllers "github.com/storefront-labs/storefront-api/controllers/admin"
	categoryControllers "github.com/storefront-labs/storefront-api/controllers/category"
	productControllers "github.com/storefront-labs/storefront-api/controllers/product"
	"github.com/storefront-labs/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the API-key-protected catalog mutations and
// reporting endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, engine *cart.Engine) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.RequireAPIKey(cfg.AdminAPIKey))
	{
		// ──────────────── Categories ────────────────
		adminGroup.POST("/category", categoryControllers.CreateCategory(db))
		adminGroup.PUT("/categories/:categoryId", categoryControllers.UpdateCategory(db))
		adminGroup.DELETE("/categories/:categoryId", categoryControllers.DeleteCategory(db))

		// ──────────────── Products ────────────────
		adminGroup.POST("/categories/:categoryId/product", productControllers.CreateProduct(db))
		adminGroup.PUT("/products/:productId", productControllers.UpdateProduct(db))
		adminGroup.DELETE("/products/:productId", productControllers.DeleteProduct(db, engine))

		// ──────────────── Reports ────────────────
		adminGroup.GET("/carts/export", adminControllers.ExportCartsToExcel(db, engine))
	}
}
