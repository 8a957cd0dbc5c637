// Package app wires configuration, clients, storage, and services.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnnaVal-na/finsight/internal/clients/alphavantage"
	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
	"github.com/AnnaVal-na/finsight/internal/services/cashback"
	"github.com/AnnaVal-na/finsight/internal/services/home"
	"github.com/AnnaVal-na/finsight/internal/services/spending"
	"github.com/AnnaVal-na/finsight/internal/sources/statement"
	"github.com/AnnaVal-na/finsight/internal/storage"
)

// App holds all initialized clients and services. Each invocation of a
// top-level operation reconstructs its inputs from the source; nothing is
// shared mutable state.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage *storage.FileStore
	Source  interfaces.TransactionSource
	Quotes  interfaces.QuoteClient

	Cashback interfaces.CashbackAnalyzer
	Spending interfaces.SpendingReporter
	Home     interfaces.DashboardBuilder
}

// NewApp initializes the application from a config path. configPath may
// be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("FINSIGHT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join("config", "finsight.toml")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := storage.NewFileStore(logger, &config.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	source := statement.NewSource(config.Source.Path,
		statement.WithSheet(config.Source.Sheet),
		statement.WithLogger(logger),
	)

	av := config.Clients.AlphaVantage
	quotes := alphavantage.NewClient(av.APIKey,
		alphavantage.WithBaseURL(av.BaseURL),
		alphavantage.WithBaseCurrency(av.BaseCurrency),
		alphavantage.WithRateLimit(av.RateLimit),
		alphavantage.WithTimeout(av.GetTimeout()),
		alphavantage.WithLogger(logger),
	)

	return &App{
		Config:   config,
		Logger:   logger,
		Storage:  store,
		Source:   source,
		Quotes:   quotes,
		Cashback: cashback.NewService(logger),
		Spending: spending.NewService(store, logger),
		Home:     home.NewService(source, store, quotes, logger),
	}, nil
}
