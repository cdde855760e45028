package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	cartrepo "github.com/smallbiznis/storefront/internal/cart/repository"
	cartservice "github.com/smallbiznis/storefront/internal/cart/service"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	catalogrepo "github.com/smallbiznis/storefront/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/storefront/internal/catalog/service"
	"github.com/smallbiznis/storefront/internal/checkout/domain"
	"github.com/smallbiznis/storefront/internal/checkout/providerclient"
	"github.com/smallbiznis/storefront/internal/checkout/service"
	"github.com/smallbiznis/storefront/internal/config"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	orderrepo "github.com/smallbiznis/storefront/internal/order/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const buyer = "buyer@example.com"

type capturingProvider struct {
	amounts    []int64
	currencies []string
}

func (p *capturingProvider) CreateIntent(_ context.Context, amountMinor int64, currency string) (providerclient.Intent, error) {
	p.amounts = append(p.amounts, amountMinor)
	p.currencies = append(p.currencies, currency)
	id := fmt.Sprintf("pi_test_%d", len(p.amounts))
	return providerclient.Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       amountMinor,
		Currency:     currency,
	}, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_checkout_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE products (
			id BIGINT PRIMARY KEY,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			unit_price NUMERIC(12,2) NOT NULL,
			currency TEXT NOT NULL,
			image_url TEXT,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_products_slug ON products(slug)`,
		`CREATE TABLE carts (
			id BIGINT PRIMARY KEY,
			buyer_email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_carts_buyer_email ON carts(buyer_email)`,
		`CREATE TABLE cart_items (
			id BIGINT PRIMARY KEY,
			cart_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL,
			currency TEXT NOT NULL,
			quantity INT NOT NULL
		)`,
		`CREATE TABLE orders (
			id BIGINT PRIMARY KEY,
			buyer_email TEXT NOT NULL,
			payment_intent_id TEXT NOT NULL,
			total NUMERIC(12,2) NOT NULL,
			currency TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_orders_payment_intent_id ON orders(payment_intent_id)`,
		`CREATE TABLE order_items (
			id BIGINT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL,
			quantity INT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

type fixture struct {
	db          *gorm.DB
	cartSvc     cartdomain.Service
	catalogSvc  catalogdomain.Service
	checkoutSvc domain.Service
	orderRepo   orderdomain.Repository
	provider    *capturingProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(9)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  catalogrepo.Provide(),
	})
	cartSvc := cartservice.New(cartservice.Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       cartrepo.Provide(),
		CatalogSvc: catalogSvc,
	})
	provider := &capturingProvider{}
	repo := orderrepo.Provide()
	checkoutSvc := service.New(service.Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Cfg:       config.Config{DefaultCurrency: "USD"},
		CartSvc:   cartSvc,
		OrderRepo: repo,
		Provider:  provider,
	})

	return &fixture{
		db:          db,
		cartSvc:     cartSvc,
		catalogSvc:  catalogSvc,
		checkoutSvc: checkoutSvc,
		orderRepo:   repo,
		provider:    provider,
	}
}

func (f *fixture) addToCart(t *testing.T, name, price string, quantity int) {
	t.Helper()

	product, err := f.catalogSvc.Create(context.Background(), catalogdomain.CreateProductRequest{
		Name:      name,
		UnitPrice: price,
		Currency:  "USD",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := f.cartSvc.AddItem(context.Background(), buyer, cartdomain.AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  quantity,
	}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addToCart(t, "Pour Over Kettle", "49.99", 1)
	f.addToCart(t, "Ceramic Mug", "9.00", 2)

	resp, err := f.checkoutSvc.Checkout(ctx, buyer)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if resp.Order.Status != orderdomain.StatusPending {
		t.Fatalf("status = %s", resp.Order.Status)
	}
	if resp.ClientSecret == "" {
		t.Fatal("expected client secret")
	}
	if !resp.Order.Total.Equal(decimal.RequireFromString("67.99")) {
		t.Fatalf("total = %s", resp.Order.Total)
	}
	if len(f.provider.amounts) != 1 || f.provider.amounts[0] != 6799 {
		t.Fatalf("intent amounts = %v", f.provider.amounts)
	}

	// The order must be durable and findable by intent id for the webhook.
	order, err := f.orderRepo.FindByPaymentIntentID(ctx, f.db, resp.Order.PaymentIntentID, true)
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if order == nil {
		t.Fatal("order not persisted")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Items))
	}

	// Checkout empties the cart.
	cart, err := f.cartSvc.Get(ctx, buyer)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	if _, err := f.checkoutSvc.Checkout(context.Background(), buyer); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
}

func TestCheckoutInvalidBuyer(t *testing.T) {
	f := newFixture(t)

	if _, err := f.checkoutSvc.Checkout(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidBuyer) {
		t.Fatalf("expected invalid buyer, got %v", err)
	}
}

func TestCheckoutRejectsMixedCurrencies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addToCart(t, "Pour Over Kettle", "49.99", 1)

	// Second line priced in another currency, injected directly since the
	// catalog service normalizes everything it creates.
	product, err := f.catalogSvc.Create(ctx, catalogdomain.CreateProductRequest{
		Name:      "Import Grinder",
		UnitPrice: "80.00",
		Currency:  "EUR",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := f.cartSvc.AddItem(ctx, buyer, cartdomain.AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if _, err := f.checkoutSvc.Checkout(ctx, buyer); !errors.Is(err, domain.ErrMixedCurrency) {
		t.Fatalf("expected mixed currency, got %v", err)
	}
}
