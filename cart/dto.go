package cart

import (
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/models"
)

// CartDTO is the projection the cart endpoints return.
type CartDTO struct {
	CartID     uint            `json:"cart_id"`
	Items      []CartItemDTO   `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartItemDTO struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func toCartDTO(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		CartID:     cart.CartID,
		Items:      make([]CartItemDTO, 0, len(cart.Items)),
		TotalPrice: cart.TotalPrice,
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		dto.Items = append(dto.Items, CartItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
			LineTotal:   item.LineTotal(),
		})
	}
	return dto
}

// recomputeTotal sums quantity times snapshot price over the lines. The
// stored total is always overwritten with this, never adjusted in place.
func recomputeTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	return total
}
