package providerclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Intent is the provider-side payment intent created for a checkout.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Client creates payment intents with the external payment provider.
type Client interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (Intent, error)
}

var Module = fx.Provide(NewLocal)

// local mints intent ids in process. It stands in for the real provider SDK,
// which is outside this service; the webhook path only needs the id shape.
type local struct{}

func NewLocal() Client {
	return &local{}
}

func (l *local) CreateIntent(_ context.Context, amountMinor int64, currency string) (Intent, error) {
	id := fmt.Sprintf("pi_%s", strings.ReplaceAll(uuid.NewString(), "-", ""))
	return Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%s", id, uuid.NewString()[:8]),
		Amount:       amountMinor,
		Currency:     strings.ToLower(currency),
	}, nil
}
