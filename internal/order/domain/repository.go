package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	// FindByPaymentIntentID locates the order correlated to a provider
	// payment intent, optionally eager-loading line items.
	FindByPaymentIntentID(ctx context.Context, db *gorm.DB, intentID string, withItems bool) (*Order, error)
	ListByBuyer(ctx context.Context, db *gorm.DB, buyerEmail string) ([]*Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
}
