package buyerctx

import (
	"context"
	"strings"
)

// BuyerContextKey is the request context key for the authenticated buyer email.
type BuyerContextKey struct{}

// WithEmail stores the buyer email in the context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, BuyerContextKey{}, email)
}

// EmailFromContext returns the buyer email from context, if set.
func EmailFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(BuyerContextKey{}).(string)
	if !ok {
		return "", false
	}
	email := strings.TrimSpace(value)
	if email == "" {
		return "", false
	}
	return email, true
}
