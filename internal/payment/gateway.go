package payment

import (
	"context"
	"errors"
)

// ErrInvalidSignature marks a webhook payload whose signature did not
// verify against the shared secret.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

// LineItem is one hosted-checkout line. UnitAmount is in minor currency
// units (cents).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// Session is a provider-hosted checkout page the buyer is redirected to.
type Session struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// Event is a verified webhook envelope.
type Event struct {
	Type     string
	Metadata map[string]string
}

const EventCheckoutCompleted = "checkout.session.completed"

// Gateway abstracts the hosted-payment provider so the checkout dispatcher
// can be exercised without network calls.
type Gateway interface {
	CreateSession(ctx context.Context, items []LineItem, successURL, cancelURL string, metadata map[string]string) (*Session, error)
	VerifyWebhook(payload []byte, sigHeader string) (*Event, error)
}
