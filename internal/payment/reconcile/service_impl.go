package reconcile

import (
	"context"
	"time"

	"github.com/smallbiznis/storefront/internal/clock"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/pkg/retry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Lookup retry bounds absorb the race where the provider's webhook arrives
// before the checkout transaction that creates the order has committed.
const (
	lookupAttempts = 3
	lookupDelay    = time.Second
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	OrderRepo orderdomain.Repository
	Notifier  paymentdomain.Notifier `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	orderRepo orderdomain.Repository
	notifier  paymentdomain.Notifier
	lookup    retry.Policy
}

func New(p Params) paymentdomain.Reconciler {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("payment.reconcile"),
		orderRepo: p.OrderRepo,
		notifier:  p.Notifier,
		lookup:    retry.NewPolicy(lookupAttempts, lookupDelay, p.Clock),
	}
}

// Reconcile settles one succeeded payment intent against its order. Duplicate
// deliveries re-derive the same terminal status and succeed; concurrent
// duplicates race on the status write with last-write-wins, which is
// acceptable because both writers derive the same value.
func (s *Service) Reconcile(ctx context.Context, intent paymentdomain.Intent) (paymentdomain.ReconcileResult, error) {
	order, err := s.findOrder(ctx, intent.ID)
	if err != nil {
		return paymentdomain.ReconcileResult{}, err
	}
	if order == nil {
		s.log.Warn("order not found after retries",
			zap.String("payment_intent_id", intent.ID),
			zap.Int("attempts", lookupAttempts),
		)
		return paymentdomain.ReconcileResult{Outcome: paymentdomain.OutcomeOrderNotFound},
			paymentdomain.ErrOrderNotFound
	}

	expected := orderdomain.MinorUnits(order.ItemsTotal())
	target := orderdomain.StatusPaymentReceived
	outcome := paymentdomain.OutcomePaymentReceived
	if expected != intent.Amount {
		target = orderdomain.StatusPaymentMismatch
		outcome = paymentdomain.OutcomePaymentMismatch
		s.log.Warn("payment amount mismatch",
			zap.String("payment_intent_id", intent.ID),
			zap.Int64("expected", expected),
			zap.Int64("reported", intent.Amount),
		)
	}

	if order.Status != target {
		if err := s.orderRepo.UpdateStatus(ctx, s.db, order.ID, target); err != nil {
			return paymentdomain.ReconcileResult{}, err
		}
	}
	order.Status = target

	if s.notifier != nil {
		s.notifier.NotifyOrderComplete(ctx, order.BuyerEmail, order.View())
	}

	return paymentdomain.ReconcileResult{Outcome: outcome, Order: order.View()}, nil
}

func (s *Service) findOrder(ctx context.Context, intentID string) (*orderdomain.Order, error) {
	var (
		order    *orderdomain.Order
		fatalErr error
	)

	err := s.lookup.Do(ctx, func(ctx context.Context) error {
		found, err := s.orderRepo.FindByPaymentIntentID(ctx, s.db, intentID, true)
		if err != nil {
			// Persistence failures are fatal for this delivery, not
			// worth retrying on a one second cadence.
			fatalErr = err
			return nil
		}
		if found == nil {
			return paymentdomain.ErrOrderNotFound
		}
		order = found
		return nil
	})
	if fatalErr != nil {
		return nil, fatalErr
	}
	if err != nil {
		return nil, nil
	}
	return order, nil
}
