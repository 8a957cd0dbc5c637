// Package cashback ranks spending categories by accumulated cashback.
package cashback

import (
	"fmt"
	"sort"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
	"github.com/AnnaVal-na/finsight/internal/models"
)

// Compile-time interface check
var _ interfaces.CashbackAnalyzer = (*Service)(nil)

// Service implements CashbackAnalyzer
type Service struct {
	logger *common.Logger
}

// NewService creates a new cashback analysis service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Analyze accumulates cashback per category for the given calendar month
// and ranks categories by total descending. An out-of-range month fails
// the whole call with the empty summary; a malformed cashback value skips
// that record only.
func (s *Service) Analyze(records []models.Transaction, year, month int) models.CashbackSummary {
	if month < 1 || month > 12 {
		s.logger.Error().Int("month", month).Msg("Cashback analysis rejected: month out of range")
		return models.CashbackSummary{}
	}

	totals := make(map[string]float64)
	order := make([]string, 0)

	for i := range records {
		t := &records[i]
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}

		value, err := t.CashbackValue()
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("category", t.CategoryOrDefault()).
				Time("date", t.Date).
				Msg("Skipping transaction with malformed cashback")
			continue
		}

		// Only a positive cashback creates or advances a category entry
		if value <= 0 {
			continue
		}

		category := t.CategoryOrDefault()
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += value
	}

	summary := make(models.CashbackSummary, 0, len(order))
	for _, category := range order {
		summary = append(summary, models.CategoryCashback{
			Category: category,
			Total:    totals[category],
		})
	}

	// Rank by total descending; ties keep insertion order
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Total > summary[j].Total
	})

	s.logger.Info().
		Int("categories", len(summary)).
		Str("period", fmt.Sprintf("%04d-%02d", year, month)).
		Msg("Cashback analysis complete")

	return summary
}
