package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/cart"
)

// cartMutation is the request body shared by the add and update endpoints.
type cartMutation struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

// FetchCart pulls the caller's server cart.
func (c *Client) FetchCart(ctx context.Context, token string) (cart.State, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/cart", nil, token)
	if err != nil {
		return cart.State{}, err
	}
	return c.doCart(req, "cart")
}

// AddCartItem adds quantity of a product and returns the resulting cart.
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) (cart.State, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/cart/add", cartMutation{ProductID: productID, Quantity: quantity}, token)
	if err != nil {
		return cart.State{}, err
	}
	return c.doCart(req, "cart add")
}

// UpdateCartItem sets the quantity of an existing line.
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) (cart.State, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/cart/update", cartMutation{ProductID: productID, Quantity: quantity}, token)
	if err != nil {
		return cart.State{}, err
	}
	return c.doCart(req, "cart update")
}

// RemoveCartItem drops a line. The backend expects the product id in the
// request body, not the path.
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) (cart.State, error) {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, "/cart/remove", cartMutation{ProductID: productID}, token)
	if err != nil {
		return cart.State{}, err
	}
	return c.doCart(req, "cart remove")
}

// ClearCart empties the server cart. The response body is ignored.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/cart/clear", nil, token)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) doCart(req *http.Request, what string) (cart.State, error) {
	resp, err := c.do(req)
	if err != nil {
		return cart.State{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return cart.State{}, c.errorFromResponse(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return cart.State{}, fmt.Errorf("api: read %s response: %w", what, err)
	}
	state, err := decodeCartPayload(raw)
	if err != nil {
		return cart.State{}, fmt.Errorf("api: decode %s: %w", what, err)
	}
	return state, nil
}

// decodeCartPayload tolerates the two shapes the backend is known to return:
// an object {items, total} or a bare array of lines.
func decodeCartPayload(raw []byte) (cart.State, error) {
	var envelope struct {
		Items []cart.Line      `json:"items"`
		Total *decimal.Decimal `json:"total"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Items != nil {
		s := cart.State{Lines: envelope.Items}
		if envelope.Total != nil {
			s.Total = *envelope.Total
		} else {
			s.Total = cart.ComputeTotal(s.Lines)
		}
		return s, nil
	}

	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return cart.State{}, err
	}
	return cart.State{Lines: lines, Total: cart.ComputeTotal(lines)}, nil
}
