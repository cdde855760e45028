package domain

import (
	"context"
	"errors"

	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

type CheckoutResponse struct {
	Order        orderdomain.OrderView `json:"order"`
	ClientSecret string                `json:"client_secret"`
}

type Service interface {
	// Checkout converts the buyer's cart into a pending order correlated
	// to a freshly created payment intent. The order row is committed
	// before the response is returned, so the provider can only be asked
	// to confirm payment for an order that already exists.
	Checkout(ctx context.Context, buyerEmail string) (CheckoutResponse, error)
}

var (
	ErrEmptyCart     = errors.New("empty_cart")
	ErrInvalidBuyer  = errors.New("invalid_buyer")
	ErrMixedCurrency = errors.New("mixed_currency")
)
