package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	"github.com/smallbiznis/storefront/internal/checkout/domain"
	"github.com/smallbiznis/storefront/internal/checkout/providerclient"
	"github.com/smallbiznis/storefront/internal/config"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Cfg       config.Config
	CartSvc   cartdomain.Service
	OrderRepo orderdomain.Repository
	Provider  providerclient.Client
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	cfg       config.Config
	cartSvc   cartdomain.Service
	orderRepo orderdomain.Repository
	provider  providerclient.Client
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("checkout.service"),
		genID:     p.GenID,
		cfg:       p.Cfg,
		cartSvc:   p.CartSvc,
		orderRepo: p.OrderRepo,
		provider:  p.Provider,
	}
}

func (s *Service) Checkout(ctx context.Context, buyerEmail string) (domain.CheckoutResponse, error) {
	buyer := strings.ToLower(strings.TrimSpace(buyerEmail))
	if buyer == "" {
		return domain.CheckoutResponse{}, domain.ErrInvalidBuyer
	}

	cart, err := s.cartSvc.Get(ctx, buyer)
	if err != nil {
		if err == cartdomain.ErrInvalidBuyer {
			return domain.CheckoutResponse{}, domain.ErrInvalidBuyer
		}
		return domain.CheckoutResponse{}, err
	}
	if len(cart.Items) == 0 {
		return domain.CheckoutResponse{}, domain.ErrEmptyCart
	}

	currency := ""
	for _, item := range cart.Items {
		if item.Currency == "" {
			continue
		}
		if currency == "" {
			currency = item.Currency
			continue
		}
		if item.Currency != currency {
			return domain.CheckoutResponse{}, domain.ErrMixedCurrency
		}
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	total := cart.Total()
	intent, err := s.provider.CreateIntent(ctx, orderdomain.MinorUnits(total), currency)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	now := time.Now().UTC()
	order := orderdomain.Order{
		ID:              s.genID.Generate(),
		BuyerEmail:      buyer,
		PaymentIntentID: intent.ID,
		Total:           total,
		Currency:        currency,
		Status:          orderdomain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, orderdomain.OrderItem{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	// The order must be durable before the client confirms payment with
	// the provider; the webhook may still arrive first, which the
	// reconciler absorbs with its retry window.
	if err := s.orderRepo.Insert(ctx, s.db, &order); err != nil {
		return domain.CheckoutResponse{}, err
	}

	if err := s.cartSvc.Clear(ctx, buyer); err != nil {
		s.log.Warn("failed to clear cart after checkout",
			zap.String("buyer", buyer),
			zap.Error(err),
		)
	}

	return domain.CheckoutResponse{
		Order:        order.View(),
		ClientSecret: intent.ClientSecret,
	}, nil
}
