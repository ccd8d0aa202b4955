package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetCoinData(t *testing.T) {
	t.Run("returns live price and logo on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/coins/bitcoin" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"market_data": {"current_price": {"krw": 142000000}},
				"image": {"large": "https://example.com/btc-large.png", "small": "https://example.com/btc-small.png"}
			}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.Client(), server.URL, time.Second)
		data := client.GetCoinData(context.Background(), "BTC")

		if data.Price != 142_000_000 {
			t.Errorf("expected live price 142000000, got %v", data.Price)
		}
		if data.ImageURL != "https://example.com/btc-large.png" {
			t.Errorf("expected large image URL, got %s", data.ImageURL)
		}
	})

	t.Run("falls back on server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.Client(), server.URL, time.Second)
		data := client.GetCoinData(context.Background(), "BTC")

		if data.Price != 130_000_000 {
			t.Errorf("expected fallback price 130000000, got %v", data.Price)
		}
	})

	t.Run("falls back on malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.Client(), server.URL, time.Second)
		data := client.GetCoinData(context.Background(), "ETH")

		if data.Price != 5_000_000 {
			t.Errorf("expected fallback price 5000000, got %v", data.Price)
		}
	})

	t.Run("falls back on unreachable server", func(t *testing.T) {
		client := NewClientWithBaseURL(&http.Client{}, "http://127.0.0.1:1", 100*time.Millisecond)
		data := client.GetCoinData(context.Background(), "USDT")

		if data.Price != 1_300 {
			t.Errorf("expected fallback price 1300, got %v", data.Price)
		}
	})

	t.Run("zero price in live response uses fallback price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"market_data": {"current_price": {"krw": 0}}, "image": {"large": "", "small": ""}}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.Client(), server.URL, time.Second)
		data := client.GetCoinData(context.Background(), "BTC")

		if data.Price != 130_000_000 {
			t.Errorf("expected fallback price for zero live price, got %v", data.Price)
		}
	})

	t.Run("unsupported symbol yields zero data without network call", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.Client(), server.URL, time.Second)
		data := client.GetCoinData(context.Background(), "DOGE")

		if called {
			t.Error("expected no network call for unsupported symbol")
		}
		if data.Price != 0 || data.ImageURL != "" {
			t.Errorf("expected zero data, got %+v", data)
		}
	})
}
