package rielpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// WebhookEventType identifies the kind of platform event delivered to
// a webhook endpoint.
type WebhookEventType string

const (
	// WebhookEventOrderCompleted is delivered when an order settles.
	WebhookEventOrderCompleted WebhookEventType = "order.completed"
	// WebhookEventOrderFailed is delivered when an order fails.
	WebhookEventOrderFailed WebhookEventType = "order.failed"
	// WebhookEventAccountCredited is delivered when funds arrive on an
	// account.
	WebhookEventAccountCredited WebhookEventType = "account.credited"
)

// WebhookEvent is a parsed webhook delivery.
type WebhookEvent struct {
	ID        string           `json:"id"`
	Type      WebhookEventType `json:"type"`
	URN       string           `json:"urn"`
	CreatedAt time.Time        `json:"created_at"`
	// Data is the event payload, shaped by Type.
	Data json.RawMessage `json:"data"`
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature the platform
// attaches to webhook deliveries (hex-encoded, from the
// X-RielPay-Signature header) against the raw request payload. The
// comparison is constant-time.
func VerifyWebhookSignature(payload []byte, signature, secret string) error {
	if signature == "" {
		return fmt.Errorf("missing webhook signature")
	}
	if secret == "" {
		return fmt.Errorf("webhook secret is required")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("webhook signature mismatch")
	}
	return nil
}

// ParseWebhookEvent verifies the signature and decodes the payload
// into a WebhookEvent.
func ParseWebhookEvent(payload []byte, signature, secret string) (*WebhookEvent, error) {
	if err := VerifyWebhookSignature(payload, signature, secret); err != nil {
		return nil, err
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("parse webhook payload: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook payload missing event type")
	}
	return &event, nil
}
