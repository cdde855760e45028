package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BuyerEmail string       `gorm:"uniqueIndex;not null" json:"buyer_email"`
	Items      []CartItem   `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Cart) TableName() string { return "carts" }

// CartItem snapshots the product name and price at the time it was added
// so later catalog edits do not change an open cart.
type CartItem struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	CartID    snowflake.ID    `gorm:"not null;index" json:"cart_id"`
	ProductID snowflake.ID    `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Currency  string          `gorm:"not null" json:"currency"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }

// Total is the decimal sum of unit price times quantity across items.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}
