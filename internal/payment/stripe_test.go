package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the same way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>" with the endpoint secret.
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedSessionPayload() []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_123",
				"object": "checkout.session",
				"metadata": {"user_id": "1"}
			}
		}
	}`, stripe.APIVersion))
}

func TestStripeGateway_VerifyWebhook(t *testing.T) {
	gateway := NewStripeGateway("sk_test_key", testWebhookSecret)

	t.Run("Valid signature yields event with metadata", func(t *testing.T) {
		payload := completedSessionPayload()
		header := signPayload(payload, testWebhookSecret, time.Now())

		event, err := gateway.VerifyWebhook(payload, header)
		require.NoError(t, err)
		assert.Equal(t, EventCheckoutCompleted, event.Type)
		assert.Equal(t, "1", event.Metadata["user_id"])
	})

	t.Run("Wrong secret", func(t *testing.T) {
		payload := completedSessionPayload()
		header := signPayload(payload, "whsec_other_secret", time.Now())

		_, err := gateway.VerifyWebhook(payload, header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Tampered payload", func(t *testing.T) {
		payload := completedSessionPayload()
		header := signPayload(payload, testWebhookSecret, time.Now())
		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = ' '

		_, err := gateway.VerifyWebhook(tampered, header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Stale timestamp", func(t *testing.T) {
		payload := completedSessionPayload()
		header := signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

		_, err := gateway.VerifyWebhook(payload, header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Garbage header", func(t *testing.T) {
		_, err := gateway.VerifyWebhook(completedSessionPayload(), "not-a-signature")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Other event type carries no metadata", func(t *testing.T) {
		payload := []byte(fmt.Sprintf(`{
			"id": "evt_test_2",
			"object": "event",
			"api_version": %q,
			"type": "payment_intent.created",
			"data": {"object": {"id": "pi_test_1", "object": "payment_intent"}}
		}`, stripe.APIVersion))
		header := signPayload(payload, testWebhookSecret, time.Now())

		event, err := gateway.VerifyWebhook(payload, header)
		require.NoError(t, err)
		assert.Equal(t, "payment_intent.created", event.Type)
		assert.Empty(t, event.Metadata)
	})
}
