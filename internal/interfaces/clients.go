// Package interfaces defines collaborator and service contracts for Finsight
package interfaces

import "context"

// QuoteClient resolves current market quotes for currencies and stocks.
// A quote that cannot be resolved (network failure, malformed response,
// missing field) is reported as an error and treated as unavailable by
// callers; lookups are never retried.
type QuoteClient interface {
	// GetCurrencyRate retrieves the current exchange rate for a currency
	// code against the configured base currency
	GetCurrencyRate(ctx context.Context, currency string) (float64, error)

	// GetStockPrice retrieves the current price for a stock symbol
	GetStockPrice(ctx context.Context, symbol string) (float64, error)
}
