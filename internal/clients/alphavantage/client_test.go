package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetCurrencyRate_ParsesStringRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "CURRENCY_EXCHANGE_RATE" {
			t.Errorf("function = %q, want CURRENCY_EXCHANGE_RATE", got)
		}
		if got := r.URL.Query().Get("from_currency"); got != "USD" {
			t.Errorf("from_currency = %q, want USD", got)
		}
		if got := r.URL.Query().Get("to_currency"); got != "RUB" {
			t.Errorf("to_currency = %q, want RUB", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "93.4275"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	rate, err := client.GetCurrencyRate(context.Background(), "USD")
	if err != nil {
		t.Fatalf("GetCurrencyRate returned error: %v", err)
	}
	if rate != 93.4275 {
		t.Errorf("rate = %v, want 93.4275", rate)
	}
}

func TestGetCurrencyRate_MissingFieldIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Alpha Vantage replies 200 with a note body when throttled
		w.Write([]byte(`{"Note": "API call frequency exceeded"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.GetCurrencyRate(context.Background(), "EUR"); err == nil {
		t.Fatal("expected an error for a response without an exchange rate field")
	}
}

func TestGetStockPrice_ParsesGlobalQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("function = %q, want GLOBAL_QUOTE", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", got)
		}
		w.Write([]byte(`{"Global Quote": {"01. symbol": "AAPL", "05. price": "189.3000"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	price, err := client.GetStockPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetStockPrice returned error: %v", err)
	}
	if price != 189.30 {
		t.Errorf("price = %v, want 189.30", price)
	}
}

func TestGetStockPrice_HTTPErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GetStockPrice(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected an error for a 503 response")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
	}
}

func TestGetCurrencyRate_UnparsableRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "N/A"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.GetCurrencyRate(context.Background(), "USD"); err == nil {
		t.Fatal("expected an error for an unparsable rate value")
	}
}

func TestNewClient_OptionOverrides(t *testing.T) {
	client := NewClient("key", WithBaseCurrency("EUR"))
	if client.baseCurrency != "EUR" {
		t.Errorf("baseCurrency = %q, want EUR", client.baseCurrency)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want default", client.baseURL)
	}
}
