package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/middleware"
	"github.com/storefront-labs/storefront-api/models"
	"gorm.io/gorm"
)

// GET /api/users/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.ContextUserEmail)

		var user models.User
		err := db.Preload("Roles").Preload("Cart.Items").
			Where("email = ?", email).First(&user).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
