package routes

import (
	"github.com/gin-gonic/gin"
	categoryControllers "github.com/storefront-labs/storefront-api/controllers/category"
	productControllers "github.com/storefront-labs/storefront-api/controllers/product"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the unauthenticated catalog reads.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	publicGroup := r.Group("/api/public")
	{
		publicGroup.GET("/categories", categoryControllers.GetCategories(db))
		publicGroup.GET("/products", productControllers.GetProducts(db))
		publicGroup.GET("/products/:productId", productControllers.GetProductByID(db))
		publicGroup.GET("/products/keyword/:keyword", productControllers.SearchProducts(db))
		publicGroup.GET("/categories/:categoryId/products", productControllers.GetProductsByCategory(db))
	}
}
