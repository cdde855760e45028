package payment

import (
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/payment/reconcile"
	"github.com/smallbiznis/storefront/internal/payment/verifier"
	"github.com/smallbiznis/storefront/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(func(cfg config.Config) *verifier.Verifier {
		return verifier.New(cfg.WebhookSecret)
	}),
	fx.Provide(reconcile.New),
	fx.Provide(webhook.NewService),
)
