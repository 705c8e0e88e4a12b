package api

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a purchased line inside an order.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// ShippingAddress is the delivery target captured at checkout.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Line1      string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order is the backend order record.
type Order struct {
	ID            string          `json:"_id"`
	User          *User           `json:"user,omitempty"`
	Items         []OrderItem     `json:"items"`
	Shipping      ShippingAddress `json:"shippingAddress"`
	PaymentMethod string          `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	IsPaid        bool            `json:"isPaid"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	IsDelivered   bool            `json:"isDelivered"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	Items         []OrderItem     `json:"items"`
	Shipping      ShippingAddress `json:"shippingAddress"`
	PaymentMethod string          `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
}

// CreateOrder places an order for the authenticated caller.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	httpReq, err := c.newJSONRequest(ctx, http.MethodPost, "/orders", req, token)
	if err != nil {
		return nil, err
	}
	return c.doOrder(httpReq, "create order")
}

// MyOrders lists the caller's order history.
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/myorders", nil, token)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}
	var orders []Order
	if err := decodeInto(resp, &orders, "orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders lists every order in the store. Admin token required.
func (c *Client) AllOrders(ctx context.Context, token string) ([]Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders", nil, token)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}
	var orders []Order
	if err := decodeInto(resp, &orders, "all orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkDelivered flags an order as delivered. Admin token required.
func (c *Client) MarkDelivered(ctx context.Context, token, id string) (*Order, error) {
	endpoint := path.Join("/orders", url.PathEscape(strings.TrimSpace(id)), "deliver")
	req, err := c.newJSONRequest(ctx, http.MethodPut, endpoint, struct{}{}, token)
	if err != nil {
		return nil, err
	}
	return c.doOrder(req, "mark delivered")
}

// Order fetches one order by id.
func (c *Client) Order(ctx context.Context, token, id string) (*Order, error) {
	endpoint := path.Join("/orders", url.PathEscape(strings.TrimSpace(id)))
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, token)
	if err != nil {
		return nil, err
	}
	return c.doOrder(req, "order")
}

// PayOrder records a payment result against an order.
func (c *Client) PayOrder(ctx context.Context, token, id string, paymentResult map[string]any) (*Order, error) {
	endpoint := path.Join("/orders", url.PathEscape(strings.TrimSpace(id)), "pay")
	req, err := c.newJSONRequest(ctx, http.MethodPut, endpoint, paymentResult, token)
	if err != nil {
		return nil, err
	}
	return c.doOrder(req, "pay order")
}

// CancelOrder cancels an order.
func (c *Client) CancelOrder(ctx context.Context, token, id string) (*Order, error) {
	endpoint := path.Join("/orders", url.PathEscape(strings.TrimSpace(id)), "cancel")
	req, err := c.newJSONRequest(ctx, http.MethodPut, endpoint, struct{}{}, token)
	if err != nil {
		return nil, err
	}
	return c.doOrder(req, "cancel order")
}

func (c *Client) doOrder(req *http.Request, what string) (*Order, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.errorFromResponse(resp)
	}
	var order Order
	if err := decodeInto(resp, &order, what); err != nil {
		return nil, err
	}
	return &order, nil
}
