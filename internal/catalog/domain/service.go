package domain

import (
	"context"
	"errors"
)

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"image_url"`
}

type ListProductRequest struct {
	Name string
}

type ListProductFilter struct {
	Name string
}

type ListProductResponse struct {
	Products []Product `json:"products"`
}

type GetProductRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	List(context.Context, ListProductRequest) (ListProductResponse, error)
	GetByID(context.Context, GetProductRequest) (Product, error)
	GetBySlug(context.Context, string) (Product, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidID       = errors.New("invalid_id")
	ErrDuplicateSlug   = errors.New("duplicate_slug")
	ErrNotFound        = errors.New("not_found")
)
