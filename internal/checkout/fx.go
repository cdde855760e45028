package checkout

import (
	"github.com/smallbiznis/storefront/internal/checkout/providerclient"
	"github.com/smallbiznis/storefront/internal/checkout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("checkout.service",
	providerclient.Module,
	fx.Provide(service.New),
)
