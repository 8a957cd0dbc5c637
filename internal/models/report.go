package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// CategoryCashback is one ranked entry of a cashback analysis.
type CategoryCashback struct {
	Category string
	Total    float64
}

// CashbackSummary is an ordered category -> total cashback mapping,
// ranked by total descending.
type CashbackSummary []CategoryCashback

// MarshalJSON emits the summary as a JSON object whose keys appear in
// rank order. Non-ASCII category names are written verbatim.
func (s CashbackSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(entry.Total)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MonthlySpend is one row of a spending report.
type MonthlySpend struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// SpendingReport holds spending by calendar month for one category over a
// trailing three-month window. Rows is never nil: an empty report still
// has the fixed (month, total) row shape.
type SpendingReport struct {
	ID          string         `json:"id"`
	Category    string         `json:"category"`
	Reference   time.Time      `json:"reference"`
	GeneratedAt time.Time      `json:"generated_at"`
	Rows        []MonthlySpend `json:"rows"`
}
