package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"eshoplabs.dev/eshop-web/internal/api"
)

func TestFetchCartDecodesEnvelopeShape(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"items":[{"product":{"_id":"64f1c0ffee0ddba11ca7e901","name":"Tee","price":19.99},"quantity":2}],"total":39.98}`))
	}))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, ts.Client())
	require.NoError(t, err)

	state, err := client.FetchCart(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, state.Lines, 1)
	require.Equal(t, 2, state.Lines[0].Quantity)
	want, _ := decimal.NewFromString("39.98")
	require.True(t, state.Total.Equal(want))
}

func TestFetchCartDecodesBareArrayShape(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"product":{"_id":"a","price":10},"quantity":3}]`))
	}))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, ts.Client())
	require.NoError(t, err)

	state, err := client.FetchCart(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, state.Lines, 1)
	want, _ := decimal.NewFromString("30")
	require.True(t, state.Total.Equal(want), "total must be recomputed when the payload omits it")
}

func TestAddCartItemPayload(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/add", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	}))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = client.AddCartItem(context.Background(), "tok", "64f1c0ffee0ddba11ca7e901", 2)
	require.NoError(t, err)
	require.Equal(t, "64f1c0ffee0ddba11ca7e901", payload["productId"])
	require.Equal(t, float64(2), payload["quantity"])
}

func TestRemoveCartItemSendsIDInBody(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/remove", r.URL.Path)
		require.Equal(t, http.MethodDelete, r.Method)
		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	}))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = client.RemoveCartItem(context.Background(), "tok", "64f1c0ffee0ddba11ca7e901")
	require.NoError(t, err)
	require.Equal(t, "64f1c0ffee0ddba11ca7e901", payload["productId"])
	_, hasQuantity := payload["quantity"]
	require.False(t, hasQuantity)
}

func TestClearCartIgnoresResponseBody(t *testing.T) {
	t.Parallel()

	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/clear", r.URL.Path)
		require.Equal(t, http.MethodDelete, r.Method)
		called = true
		_, _ = w.Write([]byte(`{"whatever":true}`))
	}))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, ts.Client())
	require.NoError(t, err)

	require.NoError(t, client.ClearCart(context.Background(), "tok"))
	require.True(t, called)
}
