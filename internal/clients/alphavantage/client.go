// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
)

const (
	DefaultBaseURL      = "https://www.alphavantage.co/query"
	DefaultBaseCurrency = "RUB"
	DefaultTimeout      = 10 * time.Second
	DefaultRateLimit    = 5 // requests per second
)

// Client implements the QuoteClient interface
type Client struct {
	baseURL      string
	apiKey       string
	baseCurrency string
	httpClient   *http.Client
	logger       *common.Logger
	limiter      *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithBaseCurrency sets the quote currency for exchange rate lookups
func WithBaseCurrency(currency string) ClientOption {
	return func(c *Client) {
		c.baseCurrency = currency
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		apiKey:       apiKey,
		baseCurrency: DefaultBaseCurrency,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

// get performs a rate-limited GET request for one API function
func (c *Client) get(ctx context.Context, function string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("function", function)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("function", function).Msg("Alpha Vantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Function:   function,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parsePrice converts an Alpha Vantage numeric field, which arrives as a
// string, into a float64. An absent field is an unavailable quote.
func parsePrice(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("no %q field in response", field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable %q value %q: %w", field, raw, err)
	}
	return value, nil
}

type exchangeRateResponse struct {
	ExchangeRate struct {
		Rate string `json:"5. Exchange Rate"`
	} `json:"Realtime Currency Exchange Rate"`
}

// GetCurrencyRate retrieves the current exchange rate for a currency code
// against the configured base currency.
func (c *Client) GetCurrencyRate(ctx context.Context, currency string) (float64, error) {
	params := url.Values{}
	params.Set("from_currency", currency)
	params.Set("to_currency", c.baseCurrency)

	var resp exchangeRateResponse
	if err := c.get(ctx, "CURRENCY_EXCHANGE_RATE", params, &resp); err != nil {
		return 0, err
	}

	return parsePrice(resp.ExchangeRate.Rate, "5. Exchange Rate")
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// GetStockPrice retrieves the current price for a stock symbol.
func (c *Client) GetStockPrice(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var resp globalQuoteResponse
	if err := c.get(ctx, "GLOBAL_QUOTE", params, &resp); err != nil {
		return 0, err
	}

	return parsePrice(resp.GlobalQuote.Price, "05. price")
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
