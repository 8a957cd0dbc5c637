// Package statement loads normalized transaction records from a bank
// statement workbook.
package statement

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
	"github.com/AnnaVal-na/finsight/internal/models"
)

// Column headers as produced by the statement export.
const (
	colDate          = "Дата операции"
	colCard          = "Номер карты"
	colAmount        = "Сумма операции"
	colPaymentAmount = "Сумма платежа"
	colCategory      = "Категория"
	colDescription   = "Описание"
	colCashback      = "Кешбэк"
)

// Operation dates are day-first; some exports carry a bare date without a
// time component.
var dateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006",
	"2006-01-02 15:04:05",
}

// Source reads transactions from an XLSX statement file.
type Source struct {
	path   string
	sheet  string
	logger *common.Logger
}

// SourceOption configures the source
type SourceOption func(*Source)

// WithSheet selects a worksheet by name; the default is the first sheet
func WithSheet(sheet string) SourceOption {
	return func(s *Source) {
		s.sheet = sheet
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a statement source for the given workbook path
func NewSource(path string, opts ...SourceOption) *Source {
	s := &Source{
		path:   path,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads the workbook and returns normalized transactions. Rows
// without a parseable operation date are dropped. A missing file or any
// load failure yields an empty batch, logged, never an error.
func (s *Source) Load(_ context.Context) ([]models.Transaction, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.logger.Error().Str("path", s.path).Msg("Statement file not found")
		return []models.Transaction{}, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to open statement file")
		return []models.Transaction{}, nil
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		s.logger.Error().Err(err).Str("sheet", sheet).Msg("Failed to read statement sheet")
		return []models.Transaction{}, nil
	}
	if len(rows) < 2 {
		s.logger.Warn().Str("path", s.path).Msg("Statement has no data rows")
		return []models.Transaction{}, nil
	}

	columns := headerIndex(rows[0])
	if _, ok := columns[colDate]; !ok {
		s.logger.Error().Str("path", s.path).Msg("Statement is missing the operation date column")
		return []models.Transaction{}, nil
	}

	transactions := make([]models.Transaction, 0, len(rows)-1)
	dropped := 0

	for _, row := range rows[1:] {
		date, ok := parseDate(cell(row, columns, colDate))
		if !ok {
			dropped++
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:          date,
			Card:          cell(row, columns, colCard),
			Amount:        parseAmount(cell(row, columns, colAmount)),
			PaymentAmount: parseAmount(cell(row, columns, colPaymentAmount)),
			Category:      cell(row, columns, colCategory),
			Description:   cell(row, columns, colDescription),
			Cashback:      cell(row, columns, colCashback),
		})
	}

	s.logger.Info().
		Int("loaded", len(transactions)).
		Int("dropped", dropped).
		Str("path", s.path).
		Msg("Statement loaded")

	return transactions, nil
}

// headerIndex maps trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

// cell returns the named column's value for a row, or empty when the row
// is shorter than the header.
func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate normalizes an operation date cell to a timezone-naive
// timestamp. Unparseable values mark the row for dropping.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount coerces an amount cell to a number. Exports use comma
// decimal separators and non-breaking spaces as thousands separators.
func parseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.NewReplacer(",", ".", " ", "", " ", "").Replace(raw)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// Ensure Source implements TransactionSource
var _ interfaces.TransactionSource = (*Source)(nil)
