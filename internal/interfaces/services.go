package interfaces

import (
	"context"

	"github.com/AnnaVal-na/finsight/internal/models"
)

// CashbackAnalyzer ranks spending categories by accumulated cashback for
// a calendar month. An out-of-range month or any unexpected failure
// produces the empty summary, never a partial one.
type CashbackAnalyzer interface {
	Analyze(records []models.Transaction, year, month int) models.CashbackSummary
}

// SpendingReporter builds spending-by-month reports for a category over a
// trailing three-month window. The computed report is always persisted
// before it is returned; a persistence failure is returned alongside the
// report.
type SpendingReporter interface {
	Report(ctx context.Context, records []models.Transaction, category, date string) (*models.SpendingReport, error)
}

// DashboardBuilder assembles the home-dashboard payload for a timestamp.
// It never fails: parse and collaborator errors are folded into the
// payload's error shape.
type DashboardBuilder interface {
	Build(ctx context.Context, now string) *models.HomePage
}
