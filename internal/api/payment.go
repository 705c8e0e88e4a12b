package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

// CheckoutSession is the payment processor redirect handed back by the
// backend.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreateCheckoutSession asks the backend to open a payment session for an
// order. The idempotency key protects against double-submits of the payment
// form; pass empty to have one generated.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, orderID, idempotencyKey string) (CheckoutSession, error) {
	body := map[string]string{"orderId": strings.TrimSpace(orderID)}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/stripe/create-checkout-session", body, token)
	if err != nil {
		return CheckoutSession{}, err
	}
	req.Header.Set(idempotencyHeader, ensureIdempotencyKey(idempotencyKey))

	resp, err := c.do(req)
	if err != nil {
		return CheckoutSession{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return CheckoutSession{}, c.errorFromResponse(resp)
	}
	var session CheckoutSession
	if err := decodeInto(resp, &session, "checkout session"); err != nil {
		return CheckoutSession{}, err
	}
	return session, nil
}

func ensureIdempotencyKey(key string) string {
	key = strings.TrimSpace(key)
	if key != "" {
		return key
	}
	return "pay_" + uuid.NewString()
}
