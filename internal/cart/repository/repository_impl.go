package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/cart/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cart *domain.Cart) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO carts (id, buyer_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		cart.ID,
		cart.BuyerEmail,
		cart.CreatedAt,
		cart.UpdatedAt,
	).Error
}

func (r *repo) FindByBuyer(ctx context.Context, db *gorm.DB, buyerEmail string) (*domain.Cart, error) {
	var cart domain.Cart
	err := db.WithContext(ctx).
		Preload("Items").
		Where("buyer_email = ?", buyerEmail).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repo) UpsertItem(ctx context.Context, db *gorm.DB, item *domain.CartItem) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE cart_items SET quantity = ?, unit_price = ?, name = ?
		 WHERE cart_id = ? AND product_id = ?`,
		item.Quantity,
		item.UnitPrice,
		item.Name,
		item.CartID,
		item.ProductID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	return db.WithContext(ctx).Exec(
		`INSERT INTO cart_items (id, cart_id, product_id, name, unit_price, currency, quantity)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.CartID,
		item.ProductID,
		item.Name,
		item.UnitPrice,
		item.Currency,
		item.Quantity,
	).Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, cartID, productID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID,
		productID,
	).Error
}

func (r *repo) ClearItems(ctx context.Context, db *gorm.DB, cartID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM cart_items WHERE cart_id = ?`,
		cartID,
	).Error
}
