// Package app wires configuration, storage, clients, and services into
// the running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wealthflow/wealthflow/internal/clients/gemini"
	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
	"github.com/wealthflow/wealthflow/internal/services/advisor"
	"github.com/wealthflow/wealthflow/internal/services/aggregate"
	"github.com/wealthflow/wealthflow/internal/services/ledger"
	"github.com/wealthflow/wealthflow/internal/services/reconcile"
	"github.com/wealthflow/wealthflow/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.LedgerStore
	Advisor     interfaces.AdvisorService
	Ledger      interfaces.LedgerService
	Aggregate   interfaces.AggregateService
	Portfolio   interfaces.PortfolioService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, the Gemini client, and
// all services. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config path: explicit arg, WEALTHFLOW_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("WEALTHFLOW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "wealthflow.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/wealthflow.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()
	if err := ensureSeeded(ctx, store, logger); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to seed storage: %w", err)
	}

	// The Gemini client is optional: without a key the advisory
	// features degrade instead of blocking startup.
	var advisorClient interfaces.AdvisorClient
	if key := common.ResolveGeminiAPIKey(config); key != "" {
		client, err := gemini.NewClient(ctx, key,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			advisorClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - advice and price updates will be unavailable")
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Ledger:      ledger.NewService(store, logger),
		Aggregate:   aggregate.NewService(store, logger),
		Portfolio:   reconcile.NewService(store, advisorClient, logger),
		Advisor:     advisor.NewService(advisorClient, logger),
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// ensureSeeded writes the built-in sample dataset for any collection
// that has never been stored. Each collection is checked independently
// so a partially seeded store is completed rather than overwritten.
func ensureSeeded(ctx context.Context, store interfaces.LedgerStore, logger *common.Logger) error {
	accounts, transactions, stocks := models.SeedData(time.Now())
	seeded := false

	if _, err := store.LoadAccounts(ctx); errors.Is(err, interfaces.ErrNotFound) {
		if err := store.SaveAccounts(ctx, accounts); err != nil {
			return err
		}
		seeded = true
	} else if err != nil {
		return err
	}

	if _, err := store.LoadTransactions(ctx); errors.Is(err, interfaces.ErrNotFound) {
		if err := store.SaveTransactions(ctx, transactions); err != nil {
			return err
		}
		seeded = true
	} else if err != nil {
		return err
	}

	if _, err := store.LoadStocks(ctx); errors.Is(err, interfaces.ErrNotFound) {
		if err := store.SaveStocks(ctx, stocks); err != nil {
			return err
		}
		seeded = true
	} else if err != nil {
		return err
	}

	if seeded {
		logger.Info().Msg("Storage seeded with sample dataset")
	}

	return nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
