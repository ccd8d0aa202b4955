// Package oracle supplies unit prices for the lending ledger: a CoinGecko
// client with per-symbol fallbacks for crypto, a static KRX lookup table for
// stocks, and the utilization-based interest rate curve.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"daechul/internal/logger"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// CoinData is the (price, logo) pair returned for a crypto symbol.
// Prices are quoted in KRW.
type CoinData struct {
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// coinIDs maps supported ticker symbols to CoinGecko coin ids.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"MATIC": "matic-network",
	"ARB":   "arbitrum",
}

// fallbackCoinData is served whenever the live lookup fails for any reason.
var fallbackCoinData = map[string]CoinData{
	"BTC":   {Price: 130_000_000, ImageURL: "https://assets.coingecko.com/coins/images/1/large/bitcoin.png"},
	"ETH":   {Price: 5_000_000, ImageURL: "https://assets.coingecko.com/coins/images/279/large/ethereum.png"},
	"USDT":  {Price: 1_300, ImageURL: "https://assets.coingecko.com/coins/images/325/large/Tether.png"},
	"MATIC": {Price: 800, ImageURL: "https://assets.coingecko.com/coins/images/4713/large/matic-token-icon.png"},
	"ARB":   {Price: 900, ImageURL: "https://assets.coingecko.com/coins/images/16547/large/photo_2023-03-29_21.47.00.jpeg"},
}

// coinResponse is the subset of the CoinGecko /coins/{id} payload we read.
type coinResponse struct {
	MarketData struct {
		CurrentPrice struct {
			KRW float64 `json:"krw"`
		} `json:"current_price"`
	} `json:"market_data"`
	Image struct {
		Large string `json:"large"`
		Small string `json:"small"`
	} `json:"image"`
}

// Client fetches crypto prices from CoinGecko with a bounded timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	timeout    time.Duration
}

// NewClient creates a CoinGecko price client. A zero timeout defaults to 5s.
func NewClient(httpClient *http.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL, timeout: timeout}
}

// NewClientWithBaseURL creates a client against a custom API base URL.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string, timeout time.Duration) *Client {
	c := NewClient(httpClient, timeout)
	c.baseURL = baseURL
	return c
}

// GetCoinData returns the current KRW price and logo URL for a crypto symbol.
// On any failure (network error, non-OK response, timeout, malformed body) it
// returns the fixed fallback for that symbol; unsupported symbols yield a zero
// price and empty logo. It never returns an error.
func (c *Client) GetCoinData(ctx context.Context, symbol string) CoinData {
	coinID, ok := coinIDs[symbol]
	if !ok {
		return fallbackCoinData[symbol]
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false",
		c.baseURL, coinID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.fallback(symbol, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback(symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.fallback(symbol, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body coinResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.fallback(symbol, err)
	}

	data := CoinData{
		Price:    body.MarketData.CurrentPrice.KRW,
		ImageURL: body.Image.Large,
	}
	if data.ImageURL == "" {
		data.ImageURL = body.Image.Small
	}

	fb := fallbackCoinData[symbol]
	if data.Price == 0 {
		data.Price = fb.Price
	}
	if data.ImageURL == "" {
		data.ImageURL = fb.ImageURL
	}
	return data
}

// fallback logs the failure at debug level and serves the static entry.
func (c *Client) fallback(symbol string, err error) CoinData {
	logger.Get().Debugw("using fallback price", "symbol", symbol, "reason", err.Error())
	return fallbackCoinData[symbol]
}
