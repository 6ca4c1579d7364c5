package factors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const marketBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Default symbols for the equity and crypto movement
const (
	DefaultEquitySymbol = "SPY"
	DefaultCryptoSymbol = "BTC-USD"
)

// MarketClient reads daily percentage movement from the Yahoo chart API
type MarketClient struct {
	equitySymbol string
	cryptoSymbol string
	userAgent    string
	httpClient   *http.Client
	baseURL      string
}

// NewMarketClient creates a market client for the default symbols
func NewMarketClient(userAgent string) *MarketClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &MarketClient{
		equitySymbol: DefaultEquitySymbol,
		cryptoSymbol: DefaultCryptoSymbol,
		userAgent:    userAgent,
		httpClient:   newHTTPClient(),
		baseURL:      marketBaseURL,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// Market fetches both symbols; either failing fails the snapshot
func (c *MarketClient) Market(ctx context.Context) (Market, error) {
	equity, err := c.percentChange(ctx, c.equitySymbol)
	if err != nil {
		return Market{}, err
	}

	crypto, err := c.percentChange(ctx, c.cryptoSymbol)
	if err != nil {
		return Market{}, err
	}

	return Market{EquityChange: equity, CryptoChange: crypto}, nil
}

func (c *MarketClient) percentChange(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{
		"region":   {"US"},
		"lang":     {"en-US"},
		"interval": {"2m"},
		"range":    {"1d"},
	}
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	var resp chartResponse
	if err := getJSON(ctx, c.httpClient, reqURL, c.userAgent, &resp); err != nil {
		return 0, fmt.Errorf("fetching %s chart: %w", symbol, err)
	}
	if len(resp.Chart.Result) == 0 {
		return 0, fmt.Errorf("missing %s chart result", symbol)
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil {
		return 0, fmt.Errorf("missing %s current price", symbol)
	}
	prev := meta.PreviousClose
	if prev == nil {
		prev = meta.ChartPreviousClose
	}
	if prev == nil || *prev == 0 {
		return 0, fmt.Errorf("missing %s previous close", symbol)
	}

	return (*meta.RegularMarketPrice - *prev) / *prev * 100, nil
}
