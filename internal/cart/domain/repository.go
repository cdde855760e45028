package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cart *Cart) error
	FindByBuyer(ctx context.Context, db *gorm.DB, buyerEmail string) (*Cart, error)
	UpsertItem(ctx context.Context, db *gorm.DB, item *CartItem) error
	DeleteItem(ctx context.Context, db *gorm.DB, cartID, productID snowflake.ID) error
	ClearItems(ctx context.Context, db *gorm.DB, cartID snowflake.ID) error
}
