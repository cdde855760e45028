package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type demoProduct struct {
	Name        string
	Description string
	UnitPrice   string
	Currency    string
}

var demoCatalog = []demoProduct{
	{Name: "Espresso Blend 250g", Description: "Dark roast whole beans.", UnitPrice: "12.50", Currency: "USD"},
	{Name: "Pour Over Kettle", Description: "Gooseneck kettle, 1L.", UnitPrice: "49.99", Currency: "USD"},
	{Name: "Ceramic Mug", Description: "350ml stoneware mug.", UnitPrice: "9.00", Currency: "USD"},
}

// EnsureDemoCatalog seeds a few products into an empty catalog so a fresh
// development install has something to sell.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, dp := range demoCatalog {
			price, err := decimal.NewFromString(dp.UnitPrice)
			if err != nil {
				return err
			}
			product := catalogdomain.Product{
				ID:          node.Generate(),
				Slug:        slug.Make(dp.Name),
				Name:        dp.Name,
				Description: dp.Description,
				UnitPrice:   price,
				Currency:    dp.Currency,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
