package interfaces

import (
	"context"

	"github.com/AnnaVal-na/finsight/internal/models"
)

// TransactionSource yields normalized transaction records from a bank
// statement. Implementations normalize operation dates and drop rows
// without a parseable date. A load failure surfaces as an error so the
// caller can degrade; the statement source itself logs and returns an
// empty batch for missing files.
type TransactionSource interface {
	Load(ctx context.Context) ([]models.Transaction, error)
}

// SettingsStore returns the user's watched currencies and stocks.
// A missing or malformed settings file yields both lists empty, never a
// partial result and never an error.
type SettingsStore interface {
	LoadSettings(ctx context.Context) models.UserSettings
}

// ReportStore persists report artifacts, one file per invocation.
type ReportStore interface {
	// SaveSpendingReport writes the report as a JSON artifact and returns
	// the storage key it was written under
	SaveSpendingReport(ctx context.Context, report *models.SpendingReport) (string, error)

	// SaveChart writes rendered PNG chart bytes under the given key
	SaveChart(ctx context.Context, key string, png []byte) error
}
