package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/cart"
	"github.com/storefront-labs/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /api/admin/carts/export
func ExportCartsToExcel(db *gorm.DB, engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		dtos, err := engine.GetAllCarts()
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		// Cart owners, keyed by cart id.
		owners := map[uint]string{}
		var users []models.User
		if err := db.Preload("Cart").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart owners"})
			return
		}
		for _, u := range users {
			owners[u.Cart.CartID] = u.Email
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Carts")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"CartID", "OwnerEmail", "ProductID", "ProductName",
			"Quantity", "SnapshotPrice", "LineTotal", "CartTotal",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, dto := range dtos {
			for _, item := range dto.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(dto.CartID)
				row.AddCell().SetValue(owners[dto.CartID])
				row.AddCell().SetValue(item.ProductID)
				row.AddCell().SetValue(item.ProductName)
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(item.Price.String())
				row.AddCell().SetValue(item.LineTotal.String())
				row.AddCell().SetValue(dto.TotalPrice.String())
			}
		}

		c.Header("Content-Disposition", "attachment; filename=carts.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
