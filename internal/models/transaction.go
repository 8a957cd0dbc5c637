// Package models defines the domain types for Finsight
package models

import (
	"strconv"
	"strings"
	"time"
)

// DefaultCategory is the sentinel category assigned to transactions
// whose statement row carries no category value.
const DefaultCategory = "Без категории"

// Transaction is one parsed line-item from a bank statement.
// Date is always valid: the statement source drops rows whose operation
// date cannot be parsed. Cashback keeps the raw cell text so that a
// malformed value can be skipped per record during analysis instead of
// failing the whole batch.
type Transaction struct {
	Date          time.Time `json:"date"`
	Card          string    `json:"card"`
	Amount        float64   `json:"amount"`         // Operation amount, negative = outflow
	PaymentAmount float64   `json:"payment_amount"` // May differ from Amount
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Cashback      string    `json:"cashback"` // Raw statement value, may be empty or malformed
}

// CategoryOrDefault returns the transaction category, falling back to
// DefaultCategory when the statement row had none.
func (t *Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// CashbackValue coerces the raw cashback cell to a number.
// An empty cell is zero; anything unparsable is an error for the caller
// to handle at record granularity.
func (t *Transaction) CashbackValue() (float64, error) {
	raw := strings.TrimSpace(t.Cashback)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
}

// CardSuffix returns the trailing four characters of the card identifier,
// or the whole identifier when it is shorter.
func (t *Transaction) CardSuffix() string {
	r := []rune(t.Card)
	if len(r) <= 4 {
		return t.Card
	}
	return string(r[len(r)-4:])
}
