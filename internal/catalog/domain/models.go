package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Slug        string            `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	UnitPrice   decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Currency    string            `gorm:"not null" json:"currency"`
	ImageURL    string            `gorm:"column:image_url" json:"image_url,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
