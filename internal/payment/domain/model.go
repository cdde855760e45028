package domain

import (
	"context"
	"errors"

	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

const (
	EventTypeIntentSucceeded = "payment_intent.succeeded"
	EventTypeIntentFailed    = "payment_intent.payment_failed"

	IntentStatusSucceeded = "succeeded"
)

// Event is the provider webhook envelope.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Object Intent `json:"object"`
}

// Intent is the provider's payment intent embedded in the event. Amount is
// in integer minor currency units.
type Intent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

type Outcome string

const (
	OutcomePaymentReceived Outcome = "payment_received"
	OutcomePaymentMismatch Outcome = "payment_mismatch"
	OutcomeOrderNotFound   Outcome = "order_not_found"
)

// ReconcileResult is the typed outcome of reconciling one intent, so callers
// branch explicitly instead of catching errors.
type ReconcileResult struct {
	Outcome Outcome
	Order   orderdomain.OrderView
}

type Reconciler interface {
	Reconcile(ctx context.Context, intent Intent) (ReconcileResult, error)
}

// Notifier pushes an order-complete notification to the buyer's live
// connection, if any. Implementations never return an error; delivery is
// best effort.
type Notifier interface {
	NotifyOrderComplete(ctx context.Context, buyerEmail string, order orderdomain.OrderView)
}

type Service interface {
	// IngestWebhook verifies the raw payload signature and reconciles
	// succeeded payment intents. Event kinds other than a succeeded
	// payment intent are a benign no-op.
	IngestWebhook(ctx context.Context, payload []byte, signature string) error
}

var (
	ErrSecretMissing    = errors.New("webhook_secret_missing")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidPayload   = errors.New("invalid_payload")
	ErrEventIgnored     = errors.New("event_ignored")
	ErrOrderNotFound    = errors.New("order_not_found")
)
