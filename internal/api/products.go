package api

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"eshoplabs.dev/eshop-web/internal/catalog"
)

// ListProducts pulls the full product catalog. The endpoint is public.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/products", nil, "")
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
	var products []catalog.Product
	if err := decodeInto(resp, &products, "products"); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*catalog.Product, error) {
	endpoint := path.Join("/products", url.PathEscape(strings.TrimSpace(id)))
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, "")
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
	var product catalog.Product
	if err := decodeInto(resp, &product, "product"); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalog item. Admin only.
func (c *Client) CreateProduct(ctx context.Context, token string, product catalog.Product) (*catalog.Product, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/products", product, token)
	if err != nil {
		return nil, err
	}
	return c.doProduct(req)
}

// UpdateProduct replaces a catalog item. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, product catalog.Product) (*catalog.Product, error) {
	endpoint := path.Join("/products", url.PathEscape(strings.TrimSpace(id)))
	req, err := c.newJSONRequest(ctx, http.MethodPut, endpoint, product, token)
	if err != nil {
		return nil, err
	}
	return c.doProduct(req)
}

// DeleteProduct removes a catalog item. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	endpoint := path.Join("/products", url.PathEscape(strings.TrimSpace(id)))
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil, token)
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
	return nil
}

func (c *Client) doProduct(req *http.Request) (*catalog.Product, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.errorFromResponse(resp)
	}
	var product catalog.Product
	if err := decodeInto(resp, &product, "product"); err != nil {
		return nil, err
	}
	return &product, nil
}
