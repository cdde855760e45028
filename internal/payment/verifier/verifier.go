package verifier

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/smallbiznis/storefront/internal/payment/domain"
)

// Verifier validates webhook payload signatures against the shared secret
// and decodes the event envelope. Pure validation, no side effects.
type Verifier struct {
	secret string
}

func New(secret string) *Verifier {
	return &Verifier{secret: strings.TrimSpace(secret)}
}

// Verify checks the signature header against the HMAC-SHA256 digest of the
// exact raw payload bytes. Any re-serialization before this point would
// invalidate the signature.
func (v *Verifier) Verify(payload []byte, signature string) error {
	if v.secret == "" {
		return domain.ErrSecretMissing
	}

	signature = strings.TrimSpace(signature)
	signature = strings.TrimPrefix(signature, "sha256=")
	if signature == "" {
		return domain.ErrInvalidSignature
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	_, _ = mac.Write(payload)
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return domain.ErrInvalidSignature
	}

	return nil
}

// Parse decodes a verified payload into the event envelope.
func (v *Verifier) Parse(payload []byte) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.ID) == "" || strings.TrimSpace(event.Type) == "" {
		return nil, domain.ErrInvalidPayload
	}
	return &event, nil
}

// SucceededIntent extracts the intent when the event is a succeeded payment
// intent. The webhook endpoint receives many event kinds; everything else is
// ErrEventIgnored, a benign no-op rather than an error.
func SucceededIntent(event *domain.Event) (domain.Intent, error) {
	if event == nil {
		return domain.Intent{}, domain.ErrInvalidPayload
	}
	if event.Type != domain.EventTypeIntentSucceeded {
		return domain.Intent{}, domain.ErrEventIgnored
	}
	intent := event.Data.Object
	if strings.TrimSpace(intent.ID) == "" {
		return domain.Intent{}, domain.ErrInvalidPayload
	}
	if intent.Status != domain.IntentStatusSucceeded {
		return domain.Intent{}, domain.ErrEventIgnored
	}
	return intent, nil
}

// Sign computes the signature for payload under secret. Exposed for clients
// and tests that need to produce valid headers.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
