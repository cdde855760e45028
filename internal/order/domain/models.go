package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusPaymentReceived Status = "payment_received"
	StatusPaymentMismatch Status = "payment_mismatch"
	StatusShipped         Status = "shipped"
	StatusCancelled       Status = "cancelled"
)

// Terminal reports whether payment reconciliation has already settled the
// order. Reconciliation never moves an order back to pending.
func (s Status) Terminal() bool {
	return s == StatusPaymentReceived || s == StatusPaymentMismatch
}

type Order struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	BuyerEmail      string          `gorm:"not null;index" json:"buyer_email"`
	PaymentIntentID string          `gorm:"uniqueIndex;not null" json:"payment_intent_id"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Currency        string          `gorm:"not null" json:"currency"`
	Status          Status          `gorm:"not null" json:"status"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID   snowflake.ID    `gorm:"not null;index" json:"order_id"`
	ProductID snowflake.ID    `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

// ItemsTotal recomputes the decimal total from line items, rounded to two
// decimal places.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// OrderView is the external projection pushed to clients and returned by the
// API. Never the raw entity.
type OrderView struct {
	ID              string          `json:"id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	Status          Status          `json:"status"`
	Items           []OrderItemView `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItemView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (o Order) View() OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return OrderView{
		ID:              o.ID.String(),
		PaymentIntentID: o.PaymentIntentID,
		Total:           o.Total,
		Currency:        o.Currency,
		Status:          o.Status,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}
