package notifier

import (
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("notifier.service",
	fx.Provide(New),
	fx.Provide(func(s *Service) paymentdomain.Notifier { return s }),
)
