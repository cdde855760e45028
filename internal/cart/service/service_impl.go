package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/cart/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	CatalogSvc catalogdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	catalogSvc catalogdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("cart.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		catalogSvc: p.CatalogSvc,
	}
}

func (s *Service) Get(ctx context.Context, buyerEmail string) (domain.Cart, error) {
	cart, err := s.ensureCart(ctx, buyerEmail)
	if err != nil {
		return domain.Cart{}, err
	}
	return *cart, nil
}

func (s *Service) AddItem(ctx context.Context, buyerEmail string, req domain.AddItemRequest) (domain.Cart, error) {
	if req.Quantity <= 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	product, err := s.catalogSvc.GetByID(ctx, catalogdomain.GetProductRequest{ID: req.ProductID})
	if err != nil {
		if err == catalogdomain.ErrNotFound || err == catalogdomain.ErrInvalidID {
			return domain.Cart{}, domain.ErrInvalidProduct
		}
		return domain.Cart{}, err
	}

	cart, err := s.ensureCart(ctx, buyerEmail)
	if err != nil {
		return domain.Cart{}, err
	}

	quantity := req.Quantity
	for _, item := range cart.Items {
		if item.ProductID == product.ID {
			quantity += item.Quantity
		}
	}

	item := domain.CartItem{
		ID:        s.genID.Generate(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Currency:  product.Currency,
		Quantity:  quantity,
	}
	if err := s.repo.UpsertItem(ctx, s.db, &item); err != nil {
		return domain.Cart{}, err
	}

	return s.Get(ctx, buyerEmail)
}

func (s *Service) UpdateItem(ctx context.Context, buyerEmail string, req domain.UpdateItemRequest) (domain.Cart, error) {
	if req.Quantity < 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil || productID == 0 {
		return domain.Cart{}, domain.ErrInvalidProduct
	}

	cart, err := s.ensureCart(ctx, buyerEmail)
	if err != nil {
		return domain.Cart{}, err
	}

	var existing *domain.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			existing = &cart.Items[i]
			break
		}
	}
	if existing == nil {
		return domain.Cart{}, domain.ErrItemNotFound
	}

	if req.Quantity == 0 {
		if err := s.repo.DeleteItem(ctx, s.db, cart.ID, productID); err != nil {
			return domain.Cart{}, err
		}
		return s.Get(ctx, buyerEmail)
	}

	existing.Quantity = req.Quantity
	if err := s.repo.UpsertItem(ctx, s.db, existing); err != nil {
		return domain.Cart{}, err
	}

	return s.Get(ctx, buyerEmail)
}

func (s *Service) Clear(ctx context.Context, buyerEmail string) error {
	cart, err := s.ensureCart(ctx, buyerEmail)
	if err != nil {
		return err
	}
	return s.repo.ClearItems(ctx, s.db, cart.ID)
}

func (s *Service) ensureCart(ctx context.Context, buyerEmail string) (*domain.Cart, error) {
	email := strings.ToLower(strings.TrimSpace(buyerEmail))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidBuyer
	}

	cart, err := s.repo.FindByBuyer(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now().UTC()
	created := domain.Cart{
		ID:         s.genID.Generate(),
		BuyerEmail: email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
