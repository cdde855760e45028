package notifier

import (
	"context"

	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/realtime"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const EventOrderComplete = "order_complete"

type Params struct {
	fx.In

	Log       *zap.Logger
	Hub       *realtime.Hub
	Directory *realtime.Directory
}

// Service delivers order notifications to connected buyers. Delivery is best
// effort: a buyer without a live connection sees the updated order on next
// page load instead.
type Service struct {
	log       *zap.Logger
	hub       *realtime.Hub
	directory *realtime.Directory
}

func New(p Params) *Service {
	return &Service{
		log:       p.Log.Named("notifier.service"),
		hub:       p.Hub,
		directory: p.Directory,
	}
}

func (s *Service) NotifyOrderComplete(_ context.Context, buyerEmail string, order orderdomain.OrderView) {
	connID, ok := s.directory.Lookup(buyerEmail)
	if !ok {
		s.log.Debug("buyer not connected, skipping notification",
			zap.String("order_id", order.ID),
		)
		return
	}

	delivered := s.hub.Send(connID, realtime.Event{
		Name: EventOrderComplete,
		Data: order,
	})
	if !delivered {
		s.log.Warn("failed to deliver order notification",
			zap.String("order_id", order.ID),
			zap.String("connection_id", connID),
		)
	}
}
