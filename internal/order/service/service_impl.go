package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("order.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, req domain.GetOrderRequest) (domain.OrderView, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.OrderView{}, domain.ErrInvalidID
	}

	buyer := strings.ToLower(strings.TrimSpace(req.BuyerEmail))
	if buyer == "" {
		return domain.OrderView{}, domain.ErrInvalidBuyer
	}

	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.OrderView{}, err
	}
	if order == nil || order.BuyerEmail != buyer {
		return domain.OrderView{}, domain.ErrNotFound
	}

	return order.View(), nil
}

func (s *Service) ListByBuyer(ctx context.Context, buyerEmail string) (domain.ListOrderResponse, error) {
	buyer := strings.ToLower(strings.TrimSpace(buyerEmail))
	if buyer == "" {
		return domain.ListOrderResponse{}, domain.ErrInvalidBuyer
	}

	orders, err := s.repo.ListByBuyer(ctx, s.db, buyer)
	if err != nil {
		return domain.ListOrderResponse{}, err
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		views = append(views, order.View())
	}

	return domain.ListOrderResponse{Orders: views}, nil
}
