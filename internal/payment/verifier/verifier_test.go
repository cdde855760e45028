package verifier_test

import (
	"testing"

	"github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/internal/payment/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func succeededPayload() []byte {
	return []byte(`{
		"id": "evt_001",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123", "status": "succeeded", "amount": 4999}}
	}`)
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v := verifier.New(testSecret)
	payload := succeededPayload()

	require.NoError(t, v.Verify(payload, verifier.Sign(payload, testSecret)))
}

func TestVerifyAcceptsPrefixedSignature(t *testing.T) {
	v := verifier.New(testSecret)
	payload := succeededPayload()

	require.NoError(t, v.Verify(payload, "sha256="+verifier.Sign(payload, testSecret)))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	v := verifier.New(testSecret)
	payload := succeededPayload()
	signature := verifier.Sign(payload, testSecret)

	tampered := make([]byte, len(payload))
	copy(tampered, payload)
	tampered[len(tampered)/2] ^= 0x01

	assert.ErrorIs(t, v.Verify(tampered, signature), domain.ErrInvalidSignature)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := verifier.New(testSecret)
	payload := succeededPayload()

	assert.ErrorIs(t, v.Verify(payload, verifier.Sign(payload, "whsec_other")), domain.ErrInvalidSignature)
}

func TestVerifyRejectsGarbageSignature(t *testing.T) {
	v := verifier.New(testSecret)

	for _, sig := range []string{"", "not-hex", "zz00"} {
		assert.ErrorIs(t, v.Verify(succeededPayload(), sig), domain.ErrInvalidSignature, "signature %q", sig)
	}
}

func TestVerifyRequiresSecret(t *testing.T) {
	v := verifier.New("")
	payload := succeededPayload()

	assert.ErrorIs(t, v.Verify(payload, verifier.Sign(payload, testSecret)), domain.ErrSecretMissing)
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	v := verifier.New(testSecret)

	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		[]byte(`{"id": "evt_001"}`),
		[]byte(`{"type": "payment_intent.succeeded"}`),
	}
	for _, payload := range cases {
		_, err := v.Parse(payload)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload, "payload %s", payload)
	}
}

func TestParseDecodesEnvelope(t *testing.T) {
	v := verifier.New(testSecret)

	event, err := v.Parse(succeededPayload())
	require.NoError(t, err)

	assert.Equal(t, "evt_001", event.ID)
	assert.Equal(t, domain.EventTypeIntentSucceeded, event.Type)
	assert.Equal(t, "pi_123", event.Data.Object.ID)
	assert.Equal(t, int64(4999), event.Data.Object.Amount)
}

func TestSucceededIntentIgnoresOtherEvents(t *testing.T) {
	cases := []domain.Event{
		{ID: "evt_1", Type: "payment_intent.payment_failed", Data: domain.EventData{Object: domain.Intent{ID: "pi_1", Status: "failed"}}},
		{ID: "evt_2", Type: "charge.refunded", Data: domain.EventData{Object: domain.Intent{ID: "ch_1", Status: "succeeded"}}},
		{ID: "evt_3", Type: domain.EventTypeIntentSucceeded, Data: domain.EventData{Object: domain.Intent{ID: "pi_2", Status: "processing"}}},
	}
	for _, event := range cases {
		e := event
		_, err := verifier.SucceededIntent(&e)
		assert.ErrorIs(t, err, domain.ErrEventIgnored, "event %s", e.ID)
	}
}

func TestSucceededIntentExtractsIntent(t *testing.T) {
	event := domain.Event{
		ID:   "evt_1",
		Type: domain.EventTypeIntentSucceeded,
		Data: domain.EventData{Object: domain.Intent{ID: "pi_1", Status: domain.IntentStatusSucceeded, Amount: 1250}},
	}

	intent, err := verifier.SucceededIntent(&event)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, int64(1250), intent.Amount)
}
