package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	CartID uint       `gorm:"primaryKey;autoIncrement" json:"cart_id"`
	UserID string     `gorm:"uniqueIndex"` // one cart per user
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	// TotalPrice is recomputed from the lines inside every mutating
	// transaction; it is never adjusted out of band.
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint    `gorm:"index:idx_cart_product,unique" json:"cart_id"`
	ProductID uint    `gorm:"index:idx_cart_product,unique" json:"product_id"`
	Product   Product `json:"-"`
	// Quantity is at least 1 while the line exists; a line that would reach
	// zero is deleted instead.
	Quantity int `json:"quantity"`
	// Price is the unit price snapshot taken when the product was added.
	// Quantity changes leave it untouched.
	Price    decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Discount decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount"`
	AddedAt  time.Time       `json:"added_at"`
}

// LineTotal is quantity times the snapshot price.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
