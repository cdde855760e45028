package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`INSERT INTO orders (id, buyer_email, payment_intent_id, total, currency, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ID,
			order.BuyerEmail,
			order.PaymentIntentID,
			order.Total,
			order.Currency,
			order.Status,
			order.CreatedAt,
			order.UpdatedAt,
		).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := tx.Exec(
				`INSERT INTO order_items (id, order_id, product_id, name, unit_price, quantity)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				item.ID,
				item.OrderID,
				item.ProductID,
				item.Name,
				item.UnitPrice,
				item.Quantity,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) FindByPaymentIntentID(ctx context.Context, db *gorm.DB, intentID string, withItems bool) (*domain.Order, error) {
	stmt := db.WithContext(ctx).Where("payment_intent_id = ?", intentID)
	if withItems {
		stmt = stmt.Preload("Items")
	}

	var order domain.Order
	err := stmt.First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) ListByBuyer(ctx context.Context, db *gorm.DB, buyerEmail string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("buyer_email = ?", buyerEmail).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		id,
	).Error
}
