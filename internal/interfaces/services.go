package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/models"
)

// LedgerService owns the account and transaction collections. It is
// the only mutation path for account balances.
type LedgerService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	AddAccount(ctx context.Context, name string, accountType models.AccountType, balance decimal.Decimal, currency string) (models.Account, error)

	// DeleteAccount removes the account. Transactions referencing it are
	// left in place with a dangling reference; history is never rewritten.
	DeleteAccount(ctx context.Context, id string) error

	ListTransactions(ctx context.Context) ([]models.TransactionView, error)

	// RecordTransaction validates and records the transaction, adjusting
	// the referenced account's balance, and persists both collections
	// atomically. A transaction naming a missing account is still
	// recorded; the balance update becomes a no-op.
	RecordTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}

// AggregateService computes read-only derived views from the current
// stored snapshot. Safe to call repeatedly; every call recomputes.
type AggregateService interface {
	Summary(ctx context.Context) (models.FinancialSummary, error)
	RecentTransactions(ctx context.Context, limit int) ([]models.TransactionView, error)
	CategoryBreakdown(ctx context.Context) ([]models.CategoryTotal, error)
	MonthlySeries(ctx context.Context) ([]models.MonthlyFlow, error)
	Portfolio(ctx context.Context) (models.PortfolioValuation, []models.HoldingPerformance, error)
}

// PortfolioService owns the stock collection and drives quote
// reconciliation against the advisory gateway.
type PortfolioService interface {
	ListStocks(ctx context.Context) ([]models.Stock, error)
	AddStock(ctx context.Context, symbol, name string, market models.Market, quantity, avgCost decimal.Decimal) (models.Stock, error)
	DeleteStock(ctx context.Context, id string) error

	// RefreshPrices fetches quotes for all held symbols and merges them
	// into the stock collection. On any gateway failure the stored
	// prices are left untouched and the error is returned.
	RefreshPrices(ctx context.Context) ([]models.Stock, error)
}

// AdvisorService produces the dashboard advice sentence. It never
// fails: unavailability and errors degrade to fixed fallback text.
type AdvisorService interface {
	Advice(ctx context.Context, summary models.FinancialSummary) string
}
