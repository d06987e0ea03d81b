package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/models"
	"gorm.io/gorm"
)

// PageRequest carries the listing query parameters after validation.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
}

// PageResponse is the paginated listing envelope.
type PageResponse struct {
	Content       []models.Product `json:"content"`
	PageNumber    int              `json:"page_number"`
	PageSize      int              `json:"page_size"`
	TotalElements int64            `json:"total_elements"`
	TotalPages    int              `json:"total_pages"`
	LastPage      bool             `json:"last_page"`
}

var sortableColumns = map[string]bool{
	"id": true, "name": true, "price": true, "special_price": true, "stock": true,
}

// ParsePageRequest validates page/size/sortBy/sortOrder query parameters,
// writing the error response itself when they are malformed.
func ParsePageRequest(c *gin.Context) (PageRequest, bool) {
	page := PageRequest{Page: 0, Size: 20, SortBy: "id", SortOrder: "asc"}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
			return page, false
		}
		page.Page = n
	}
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a positive integer"})
			return page, false
		}
		page.Size = n
	}
	if raw := c.Query("sortBy"); raw != "" {
		if !sortableColumns[raw] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported sortBy field"})
			return page, false
		}
		page.SortBy = raw
	}
	if raw := c.Query("sortOrder"); raw != "" {
		order := strings.ToLower(raw)
		if order != "asc" && order != "desc" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sortOrder must be asc or desc"})
			return page, false
		}
		page.SortOrder = order
	}
	return page, true
}

func respondPage(c *gin.Context, query *gorm.DB, page PageRequest) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	var products []models.Product
	err := query.Order(page.SortBy + " " + page.SortOrder).
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	c.JSON(http.StatusOK, PageResponse{
		Content:       products,
		PageNumber:    page.Page,
		PageSize:      page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      page.Page >= totalPages-1,
	})
}
