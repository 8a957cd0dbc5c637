package models

import "encoding/json"

// Greeting strings selected by hour of day.
const (
	GreetingMorning   = "Доброе утро"
	GreetingAfternoon = "Добрый день"
	GreetingEvening   = "Добрый вечер"
	GreetingNight     = "Доброй ночи"
)

// CardSummary aggregates month-to-date activity for one card.
type CardSummary struct {
	LastDigits string  `json:"last_digits"`
	TotalSpent float64 `json:"total_spent"`
	Cashback   float64 `json:"cashback"`
}

// TopTransaction is a dashboard projection of one transaction.
type TopTransaction struct {
	Date        string  `json:"date"` // DD.MM.YYYY
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// CurrencyRate is a resolved exchange rate for a watched currency.
type CurrencyRate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// StockPrice is a resolved price for a watched stock symbol.
type StockPrice struct {
	Stock string  `json:"stock"`
	Price float64 `json:"price"`
}

// HomePage is the home-dashboard payload. It is always returned in a
// normal shape: when Err is set, it serializes as {"error": ...} and the
// dashboard fields are omitted; callers distinguish success from failure
// by the payload shape, not by a returned error.
type HomePage struct {
	Greeting        string           `json:"greeting"`
	Cards           []CardSummary    `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
	CurrencyRates   []CurrencyRate   `json:"currency_rates"`
	StockPrices     []StockPrice     `json:"stock_prices"`

	Err string `json:"-"`
}

// IsError reports whether the payload carries an error instead of
// dashboard data.
func (p *HomePage) IsError() bool {
	return p.Err != ""
}

// MarshalJSON emits either the error shape or the dashboard shape.
func (p *HomePage) MarshalJSON() ([]byte, error) {
	if p.Err != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: p.Err})
	}

	type page struct {
		Greeting        string           `json:"greeting"`
		Cards           []CardSummary    `json:"cards"`
		TopTransactions []TopTransaction `json:"top_transactions"`
		CurrencyRates   []CurrencyRate   `json:"currency_rates"`
		StockPrices     []StockPrice     `json:"stock_prices"`
	}
	return json.Marshal(page{
		Greeting:        p.Greeting,
		Cards:           p.Cards,
		TopTransactions: p.TopTransactions,
		CurrencyRates:   p.CurrencyRates,
		StockPrices:     p.StockPrices,
	})
}
