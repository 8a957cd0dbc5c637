// Package spending builds spending-by-category reports over a trailing
// three-month window.
package spending

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
	"github.com/AnnaVal-na/finsight/internal/models"
)

// Compile-time interface check
var _ interfaces.SpendingReporter = (*Service)(nil)

// ReferenceDateLayout is the accepted format of an explicit reference date.
const ReferenceDateLayout = "2006-01-02"

// Service implements SpendingReporter
type Service struct {
	store  interfaces.ReportStore
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new spending report service
func NewService(store interfaces.ReportStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Report sums spending per calendar month for one category over the
// window [reference - 3 months, reference], inclusive both ends. An empty
// date string means "now"; anything else must be YYYY-MM-DD. The report
// is persisted before it is returned; a persistence failure is logged and
// returned alongside the computed report.
func (s *Service) Report(ctx context.Context, records []models.Transaction, category, date string) (*models.SpendingReport, error) {
	reference := s.now()
	if date != "" {
		parsed, err := time.Parse(ReferenceDateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %q, want YYYY-MM-DD: %w", date, err)
		}
		reference = parsed
	}
	start := reference.AddDate(0, -3, 0)

	totals := make(map[string]float64)
	for i := range records {
		t := &records[i]
		if t.Category != category {
			continue
		}
		if t.Date.Before(start) || t.Date.After(reference) {
			continue
		}
		totals[t.Date.Format("2006-01")] += t.Amount
	}

	rows := make([]models.MonthlySpend, 0, len(totals))
	for month, total := range totals {
		rows = append(rows, models.MonthlySpend{Month: month, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month < rows[j].Month
	})

	report := &models.SpendingReport{
		Category:    category,
		Reference:   reference,
		GeneratedAt: s.now(),
		Rows:        rows,
	}

	key, err := s.store.SaveSpendingReport(ctx, report)
	if err != nil {
		// Persistence failure still fails the operation, but the computed
		// report is handed back so the caller can decide what to do with it.
		s.logger.Error().Err(err).Str("category", category).Msg("Failed to persist spending report")
		return report, fmt.Errorf("save spending report: %w", err)
	}

	s.saveChart(ctx, key, report)

	s.logger.Info().
		Str("category", category).
		Int("months", len(rows)).
		Str("key", key).
		Msg("Spending report generated")

	return report, nil
}

// saveChart renders and stores the report's bar chart. Best effort: a
// chart failure never affects the returned report.
func (s *Service) saveChart(ctx context.Context, key string, report *models.SpendingReport) {
	if len(report.Rows) == 0 {
		return
	}

	png, err := RenderSpendingChart(report)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Spending chart render failed")
		return
	}

	if err := s.store.SaveChart(ctx, key, png); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Spending chart save failed")
	}
}
