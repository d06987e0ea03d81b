package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null;index" json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Discount    decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount"`
	// SpecialPrice is price less discount, computed once whenever price or
	// discount changes. Cart lines snapshot this value, never derive it again.
	SpecialPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"special_price"`
	Stock        int             `json:"stock"`
	CategoryID   uint            `gorm:"index" json:"category_id"`
	Category     Category        `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// ComputeSpecialPrice returns price - price*discount/100 rounded to cents.
func ComputeSpecialPrice(price, discount decimal.Decimal) decimal.Decimal {
	cut := price.Mul(discount).Div(decimal.NewFromInt(100))
	return price.Sub(cut).Round(2)
}
