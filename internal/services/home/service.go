// Package home assembles the home-dashboard payload.
package home

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
	"github.com/AnnaVal-na/finsight/internal/models"
)

// Compile-time interface check
var _ interfaces.DashboardBuilder = (*Service)(nil)

// TimestampLayout is the fixed format of the dashboard's reference
// timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

const topTransactionLimit = 5

// Service implements DashboardBuilder
type Service struct {
	source   interfaces.TransactionSource
	settings interfaces.SettingsStore
	quotes   interfaces.QuoteClient
	logger   *common.Logger
}

// NewService creates a new dashboard service
func NewService(
	source interfaces.TransactionSource,
	settings interfaces.SettingsStore,
	quotes interfaces.QuoteClient,
	logger *common.Logger,
) *Service {
	return &Service{
		source:   source,
		settings: settings,
		quotes:   quotes,
		logger:   logger,
	}
}

// Build assembles the dashboard for the given timestamp. It never fails:
// a malformed timestamp produces a payload with a date-format error, and
// a transaction source failure produces a generic system-error payload.
// Individual quote lookup failures are logged and omitted.
func (s *Service) Build(ctx context.Context, now string) *models.HomePage {
	moment, err := time.Parse(TimestampLayout, now)
	if err != nil {
		s.logger.Error().Err(err).Str("input", now).Msg("Dashboard rejected timestamp")
		return &models.HomePage{Err: fmt.Sprintf("invalid date format %q, want YYYY-MM-DD HH:MM:SS", now)}
	}

	records, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Dashboard failed to load transactions")
		return &models.HomePage{Err: fmt.Sprintf("system error: %v", err)}
	}

	// Month-to-date window, inclusive both ends
	startOfMonth := time.Date(moment.Year(), moment.Month(), 1, 0, 0, 0, 0, moment.Location())
	filtered := make([]models.Transaction, 0, len(records))
	for i := range records {
		t := &records[i]
		if t.Date.Before(startOfMonth) || t.Date.After(moment) {
			continue
		}
		filtered = append(filtered, *t)
	}

	page := &models.HomePage{
		Greeting:        greetingForHour(moment.Hour()),
		Cards:           s.buildCards(filtered),
		TopTransactions: buildTopTransactions(filtered),
		CurrencyRates:   []models.CurrencyRate{},
		StockPrices:     []models.StockPrice{},
	}

	settings := s.settings.LoadSettings(ctx)

	for _, currency := range settings.Currencies {
		rate, err := s.quotes.GetCurrencyRate(ctx, currency)
		if err != nil {
			s.logger.Warn().Err(err).Str("currency", currency).Msg("Currency rate unavailable, omitting")
			continue
		}
		page.CurrencyRates = append(page.CurrencyRates, models.CurrencyRate{Currency: currency, Rate: rate})
	}

	for _, symbol := range settings.Stocks {
		price, err := s.quotes.GetStockPrice(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("stock", symbol).Msg("Stock price unavailable, omitting")
			continue
		}
		page.StockPrices = append(page.StockPrices, models.StockPrice{Stock: symbol, Price: price})
	}

	s.logger.Info().
		Int("transactions", len(filtered)).
		Int("cards", len(page.Cards)).
		Msg("Dashboard built")

	return page
}

// buildCards aggregates per-card totals in insertion order of first
// appearance. Cashback is a flat 1% of each operation amount, not the
// statement's own cashback column.
func (s *Service) buildCards(filtered []models.Transaction) []models.CardSummary {
	type cardTotals struct {
		spent    float64
		cashback float64
	}

	totals := make(map[string]*cardTotals)
	order := make([]string, 0)

	for i := range filtered {
		t := &filtered[i]
		suffix := t.CardSuffix()

		agg, ok := totals[suffix]
		if !ok {
			agg = &cardTotals{}
			totals[suffix] = agg
			order = append(order, suffix)
		}
		agg.spent += t.Amount
		agg.cashback += t.Amount / 100
	}

	cards := make([]models.CardSummary, 0, len(order))
	for _, suffix := range order {
		cards = append(cards, models.CardSummary{
			LastDigits: suffix,
			TotalSpent: round2(totals[suffix].spent),
			Cashback:   round2(totals[suffix].cashback),
		})
	}
	return cards
}

// buildTopTransactions picks at most 5 transactions ranked by absolute
// payment amount.
func buildTopTransactions(filtered []models.Transaction) []models.TopTransaction {
	ranked := make([]models.Transaction, len(filtered))
	copy(ranked, filtered)

	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].PaymentAmount) > math.Abs(ranked[j].PaymentAmount)
	})

	if len(ranked) > topTransactionLimit {
		ranked = ranked[:topTransactionLimit]
	}

	top := make([]models.TopTransaction, 0, len(ranked))
	for i := range ranked {
		t := &ranked[i]
		top = append(top, models.TopTransaction{
			Date:        t.Date.Format("02.01.2006"),
			Amount:      t.PaymentAmount,
			Category:    t.Category,
			Description: t.Description,
		})
	}
	return top
}

// greetingForHour resolves the greeting: [5,12) morning, [12,18)
// afternoon, [18,23) evening, otherwise night.
func greetingForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return models.GreetingMorning
	case hour >= 12 && hour < 18:
		return models.GreetingAfternoon
	case hour >= 18 && hour < 23:
		return models.GreetingEvening
	default:
		return models.GreetingNight
	}
}

// round2 rounds to 2 decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
