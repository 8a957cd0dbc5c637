package home

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/models"
)

// --- Mocks ---

type mockSource struct {
	records []models.Transaction
	err     error
}

func (m *mockSource) Load(_ context.Context) ([]models.Transaction, error) {
	return m.records, m.err
}

type mockSettings struct {
	settings models.UserSettings
}

func (m *mockSettings) LoadSettings(_ context.Context) models.UserSettings {
	return m.settings
}

type mockQuotes struct {
	rates  map[string]float64
	prices map[string]float64
}

func (m *mockQuotes) GetCurrencyRate(_ context.Context, currency string) (float64, error) {
	rate, ok := m.rates[currency]
	if !ok {
		return 0, errors.New("rate unavailable")
	}
	return rate, nil
}

func (m *mockQuotes) GetStockPrice(_ context.Context, symbol string) (float64, error) {
	price, ok := m.prices[symbol]
	if !ok {
		return 0, errors.New("price unavailable")
	}
	return price, nil
}

func newTestService(source *mockSource, settings *mockSettings, quotes *mockQuotes) *Service {
	if settings == nil {
		settings = &mockSettings{settings: models.EmptyUserSettings()}
	}
	if quotes == nil {
		quotes = &mockQuotes{}
	}
	return NewService(source, settings, quotes, common.NewSilentLogger())
}

func tx(date time.Time, card string, amount, payment float64) models.Transaction {
	return models.Transaction{
		Date:          date,
		Card:          card,
		Amount:        amount,
		PaymentAmount: payment,
	}
}

// --- Tests ---

func TestBuild_GreetingBoundaries(t *testing.T) {
	svc := newTestService(&mockSource{}, nil, nil)

	cases := []struct {
		clock string
		want  string
	}{
		{"05:00:00", models.GreetingMorning},
		{"04:59:59", models.GreetingNight},
		{"11:59:59", models.GreetingMorning},
		{"12:00:00", models.GreetingAfternoon},
		{"17:59:59", models.GreetingAfternoon},
		{"18:00:00", models.GreetingEvening},
		{"22:59:59", models.GreetingEvening},
		{"23:00:00", models.GreetingNight},
		{"00:30:00", models.GreetingNight},
	}

	for _, tc := range cases {
		page := svc.Build(context.Background(), "2023-10-15 "+tc.clock)
		if page.IsError() {
			t.Fatalf("Build(%s) returned error payload: %s", tc.clock, page.Err)
		}
		if page.Greeting != tc.want {
			t.Errorf("greeting at %s = %q, want %q", tc.clock, page.Greeting, tc.want)
		}
	}
}

func TestBuild_MalformedTimestamp(t *testing.T) {
	svc := newTestService(&mockSource{}, nil, nil)

	page := svc.Build(context.Background(), "2023/10/15 12:00")
	if !page.IsError() {
		t.Fatal("expected an error payload for a malformed timestamp")
	}
	if !strings.Contains(page.Err, "invalid date format") {
		t.Errorf("Err = %q, want a date-format indicator", page.Err)
	}

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["error"]; !ok {
		t.Errorf("payload %s lacks the error field", data)
	}
	if _, ok := decoded["greeting"]; ok {
		t.Errorf("error payload %s must not carry dashboard fields", data)
	}
}

func TestBuild_SourceFailureIsSystemError(t *testing.T) {
	svc := newTestService(&mockSource{err: errors.New("boom")}, nil, nil)

	page := svc.Build(context.Background(), "2023-10-15 12:00:00")
	if !page.IsError() {
		t.Fatal("expected an error payload when the source fails")
	}
	if !strings.Contains(page.Err, "system error") || !strings.Contains(page.Err, "boom") {
		t.Errorf("Err = %q, want a system-error message with the cause", page.Err)
	}
}

func TestBuild_EmptyRecords(t *testing.T) {
	svc := newTestService(&mockSource{}, nil, nil)

	page := svc.Build(context.Background(), "2023-10-15 09:00:00")
	if page.IsError() {
		t.Fatalf("unexpected error payload: %s", page.Err)
	}
	if len(page.Cards) != 0 || len(page.TopTransactions) != 0 {
		t.Errorf("cards/top = %d/%d, want 0/0", len(page.Cards), len(page.TopTransactions))
	}
	if page.Greeting == "" {
		t.Error("greeting must still be resolved for an empty batch")
	}

	// Empty collections serialize as [], not null
	data, _ := json.Marshal(page)
	for _, field := range []string{`"cards":[]`, `"top_transactions":[]`, `"currency_rates":[]`, `"stock_prices":[]`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("payload %s lacks %s", data, field)
		}
	}
}

func TestBuild_CardAggregation(t *testing.T) {
	records := []models.Transaction{
		tx(time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC), "*3456", 1000.0, 1000.0),
	}
	svc := newTestService(&mockSource{records: records}, nil, nil)

	page := svc.Build(context.Background(), "2023-10-15 12:00:00")
	if len(page.Cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(page.Cards))
	}
	card := page.Cards[0]
	if card.LastDigits != "3456" {
		t.Errorf("last_digits = %q, want 3456", card.LastDigits)
	}
	if card.TotalSpent != 1000.0 {
		t.Errorf("total_spent = %v, want 1000.0", card.TotalSpent)
	}
	// Flat 1% model, independent of the statement's cashback column
	if card.Cashback != 10.0 {
		t.Errorf("cashback = %v, want 10.0", card.Cashback)
	}
}

func TestBuild_CardsKeepFirstAppearanceOrder(t *testing.T) {
	records := []models.Transaction{
		tx(time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), "*7197", -100, -100),
		tx(time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC), "*3456", -200, -200),
		tx(time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC), "*7197", -50.555, -50.555),
		tx(time.Date(2023, 10, 4, 0, 0, 0, 0, time.UTC), "42", -10, -10), // short identifier kept whole
	}
	svc := newTestService(&mockSource{records: records}, nil, nil)

	page := svc.Build(context.Background(), "2023-10-15 12:00:00")
	if len(page.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(page.Cards))
	}
	if page.Cards[0].LastDigits != "7197" || page.Cards[1].LastDigits != "3456" || page.Cards[2].LastDigits != "42" {
		t.Errorf("card order = %v, want first-appearance order", page.Cards)
	}
	if page.Cards[0].TotalSpent != -150.56 {
		t.Errorf("total_spent = %v, want -150.56 (rounded)", page.Cards[0].TotalSpent)
	}
}

func TestBuild_MonthToDateWindow(t *testing.T) {
	records := []models.Transaction{
		tx(time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), "*1111", -10, -10),  // 1st 00:00, included
		tx(time.Date(2023, 9, 30, 23, 59, 59, 0, time.UTC), "*2222", -20, -20), // previous month, excluded
		tx(time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC), "*3333", -30, -30), // exactly now, included
		tx(time.Date(2023, 10, 15, 12, 0, 1, 0, time.UTC), "*4444", -40, -40), // after now, excluded
	}
	svc := newTestService(&mockSource{records: records}, nil, nil)

	page := svc.Build(context.Background(), "2023-10-15 12:00:00")
	if len(page.Cards) != 2 {
		t.Fatalf("got %d cards, want 2: %+v", len(page.Cards), page.Cards)
	}
	if page.Cards[0].LastDigits != "1111" || page.Cards[1].LastDigits != "3333" {
		t.Errorf("cards = %+v", page.Cards)
	}
}

func TestBuild_TopTransactions(t *testing.T) {
	records := make([]models.Transaction, 0, 7)
	for i := 1; i <= 7; i++ {
		tr := tx(time.Date(2023, 10, i, 0, 0, 0, 0, time.UTC), "*0001", -10, float64(-100*i))
		tr.Category = "Еда"
		tr.Description = fmt.Sprintf("покупка %d", i)
		records = append(records, tr)
	}
	svc := newTestService(&mockSource{records: records}, nil, nil)

	page := svc.Build(context.Background(), "2023-10-15 12:00:00")
	if len(page.TopTransactions) != 5 {
		t.Fatalf("got %d top transactions, want 5", len(page.TopTransactions))
	}
	// Ranked by absolute payment amount descending
	if page.TopTransactions[0].Amount != -700 {
		t.Errorf("top amount = %v, want -700 (largest absolute value, raw sign preserved)", page.TopTransactions[0].Amount)
	}
	if page.TopTransactions[4].Amount != -300 {
		t.Errorf("fifth amount = %v, want -300", page.TopTransactions[4].Amount)
	}
	if page.TopTransactions[0].Date != "07.10.2023" {
		t.Errorf("top date = %q, want 07.10.2023", page.TopTransactions[0].Date)
	}
}

func TestBuild_QuoteFailuresAreOmitted(t *testing.T) {
	settings := &mockSettings{settings: models.UserSettings{
		Currencies: []string{"USD", "EUR"},
		Stocks:     []string{"AAPL", "GOOGL"},
	}}
	quotes := &mockQuotes{
		rates:  map[string]float64{"USD": 93.42},
		prices: map[string]float64{"GOOGL": 139.7},
	}
	svc := newTestService(&mockSource{}, settings, quotes)

	page := svc.Build(context.Background(), "2023-10-15 12:00:00")
	if page.IsError() {
		t.Fatalf("unexpected error payload: %s", page.Err)
	}

	if len(page.CurrencyRates) != 1 || page.CurrencyRates[0] != (models.CurrencyRate{Currency: "USD", Rate: 93.42}) {
		t.Errorf("currency_rates = %+v, want only the resolved USD rate", page.CurrencyRates)
	}
	if len(page.StockPrices) != 1 || page.StockPrices[0] != (models.StockPrice{Stock: "GOOGL", Price: 139.7}) {
		t.Errorf("stock_prices = %+v, want only the resolved GOOGL price", page.StockPrices)
	}
}
