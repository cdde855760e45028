package domain

import (
	"context"
	"errors"
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Service interface {
	Get(ctx context.Context, buyerEmail string) (Cart, error)
	AddItem(ctx context.Context, buyerEmail string, req AddItemRequest) (Cart, error)
	UpdateItem(ctx context.Context, buyerEmail string, req UpdateItemRequest) (Cart, error)
	Clear(ctx context.Context, buyerEmail string) error
}

var (
	ErrInvalidBuyer    = errors.New("invalid_buyer")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrItemNotFound    = errors.New("item_not_found")
)
