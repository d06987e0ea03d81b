package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/cart"
	"github.com/storefront-labs/storefront-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	Stock       int             `json:"stock"`
}

// POST /api/admin/categories/:categoryId/product
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := strconv.ParseUint(c.Param("categoryId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() || input.Discount.IsNegative() || input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price, discount and stock must not be negative"})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}

		// A product name is unique within its category.
		var count int64
		db.Model(&models.Product{}).
			Where("category_id = ? AND name = ?", category.ID, input.Name).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Product already exists in this category"})
			return
		}

		product := models.Product{
			Name:         input.Name,
			Description:  input.Description,
			Image:        input.Image,
			Price:        input.Price,
			Discount:     input.Discount,
			SpecialPrice: models.ComputeSpecialPrice(input.Price, input.Discount),
			Stock:        input.Stock,
			CategoryID:   category.ID,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// PUT /api/admin/products/:productId
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() || input.Discount.IsNegative() || input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price, discount and stock must not be negative"})
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		if input.Image != "" {
			product.Image = input.Image
		}
		product.Price = input.Price
		product.Discount = input.Discount
		// Special price is derived from the new price and discount, never
		// carried over from the previous rounded value.
		product.SpecialPrice = models.ComputeSpecialPrice(input.Price, input.Discount)
		product.Stock = input.Stock

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/admin/products/:productId
func DeleteProduct(db *gorm.DB, engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		// Sweep the product out of every cart before it disappears from the
		// catalog, so no line points at a missing product.
		if err := engine.RemoveProductFromAllCarts(uint(productID)); err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "product": product})
	}
}

// GET /api/public/products/:productId
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /api/public/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := ParsePageRequest(c)
		if !ok {
			return
		}
		respondPage(c, db.Model(&models.Product{}), page)
	}
}

// GET /api/public/categories/:categoryId/products
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID := c.Param("categoryId")

		var category models.Category
		if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		page, ok := ParsePageRequest(c)
		if !ok {
			return
		}
		respondPage(c, db.Model(&models.Product{}).Where("category_id = ?", category.ID), page)
	}
}

// GET /api/public/products/keyword/:keyword
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := c.Param("keyword")

		page, ok := ParsePageRequest(c)
		if !ok {
			return
		}
		query := db.Model(&models.Product{}).Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%")
		respondPage(c, query, page)
	}
}
