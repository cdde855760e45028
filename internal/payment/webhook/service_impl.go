package webhook

import (
	"context"
	"errors"

	"github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/internal/payment/verifier"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Verifier   *verifier.Verifier
	Reconciler domain.Reconciler
}

type Service struct {
	log        *zap.Logger
	verifier   *verifier.Verifier
	reconciler domain.Reconciler
}

func NewService(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("payment.webhook"),
		verifier:   p.Verifier,
		reconciler: p.Reconciler,
	}
}

func (s *Service) IngestWebhook(ctx context.Context, payload []byte, signature string) error {
	if err := s.verifier.Verify(payload, signature); err != nil {
		return err
	}

	event, err := s.verifier.Parse(payload)
	if err != nil {
		return err
	}

	intent, err := verifier.SucceededIntent(event)
	if err != nil {
		if errors.Is(err, domain.ErrEventIgnored) {
			s.log.Debug("ignoring webhook event",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.Type),
			)
			return nil
		}
		return err
	}

	result, err := s.reconciler.Reconcile(ctx, intent)
	if err != nil {
		// Surfacing the error makes the provider redeliver; mismatch is
		// not an error, it is a recorded outcome.
		return err
	}

	s.log.Info("payment intent reconciled",
		zap.String("event_id", event.ID),
		zap.String("payment_intent_id", intent.ID),
		zap.String("outcome", string(result.Outcome)),
	)
	return nil
}
