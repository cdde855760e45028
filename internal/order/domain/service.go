package domain

import (
	"context"
	"errors"
)

type GetOrderRequest struct {
	ID         string
	BuyerEmail string
}

type ListOrderResponse struct {
	Orders []OrderView `json:"orders"`
}

type Service interface {
	GetByID(ctx context.Context, req GetOrderRequest) (OrderView, error)
	ListByBuyer(ctx context.Context, buyerEmail string) (ListOrderResponse, error)
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidBuyer = errors.New("invalid_buyer")
	ErrNotFound     = errors.New("not_found")
)
