// Package models defines data structures for WealthFlow
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountBank       AccountType = "Bank"
	AccountCash       AccountType = "Cash"
	AccountCredit     AccountType = "Credit"
	AccountInvestment AccountType = "Investment"
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountBank, AccountCash, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// TransactionType signs a transaction's effect on its account balance.
type TransactionType string

const (
	TypeIncome   TransactionType = "Income"
	TypeExpense  TransactionType = "Expense"
	TypeTransfer TransactionType = "Transfer"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// Market identifies the exchange region of a holding.
type Market string

const (
	MarketTW    Market = "TW"
	MarketUS    Market = "US"
	MarketOther Market = "Other"
)

// Account is a named store of money with a running balance.
// The balance is maintained incrementally by the ledger service,
// not recomputed from transaction history.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// Transaction is a single recorded cash movement. Transactions are
// immutable once recorded; the AccountID reference is non-owning and
// may dangle after the account is deleted.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Date        string          `json:"date"` // ISO 8601 "YYYY-MM-DD"
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// YearMonth returns the "YYYY-MM" prefix of the transaction date.
// Dates shorter than 7 characters are returned as-is; grouping is a
// string-prefix operation, not calendar parsing.
func (t Transaction) YearMonth() string {
	if len(t.Date) > 7 {
		return t.Date[:7]
	}
	return t.Date
}

// Stock is a holding: a quantity of a tradable instrument held at an
// average cost basis, marked to a current price.
type Stock struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"` // e.g. "2330.TW" or "AAPL"
	Name         string          `json:"name"`
	Market       Market          `json:"market"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LastUpdated  time.Time       `json:"last_updated,omitempty"`
}

// StockQuote is an externally sourced (symbol, price) pair.
type StockQuote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// MonthlyFlow is the income/expense total for one "YYYY-MM" month.
type MonthlyFlow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is the summed expense amount for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// FinancialSummary is the dashboard headline view. All sums are
// unweighted by currency; no conversion is performed anywhere.
type FinancialSummary struct {
	TotalAssets        decimal.Decimal `json:"total_assets"`
	NetWorth           decimal.Decimal `json:"net_worth"`
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	MonthlyExpense     decimal.Decimal `json:"monthly_expense"`
	TopExpenseCategory string          `json:"top_expense_category"`
}

// PortfolioValuation aggregates the holdings collection.
type PortfolioValuation struct {
	MarketValue   decimal.Decimal `json:"market_value"`
	Cost          decimal.Decimal `json:"cost"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
	PnLPercent    decimal.Decimal `json:"pnl_percent"`
}

// HoldingPerformance is the per-holding gain view. GainPercent is 0
// when the cost basis is zero rather than undefined.
type HoldingPerformance struct {
	Stock       Stock           `json:"stock"`
	MarketValue decimal.Decimal `json:"market_value"`
	Gain        decimal.Decimal `json:"gain"`
	GainPercent decimal.Decimal `json:"gain_percent"`
}

// TransactionView is a transaction with its account name resolved for
// display. Dangling references resolve to "Unknown".
type TransactionView struct {
	Transaction
	AccountName string `json:"account_name"`
}

// UnknownAccountName is rendered for transactions whose account no
// longer exists.
const UnknownAccountName = "Unknown"

// ResolveAccountName returns the name of the account with the given id,
// or UnknownAccountName when the reference dangles.
func ResolveAccountName(accounts []Account, id string) string {
	for _, a := range accounts {
		if a.ID == id {
			return a.Name
		}
	}
	return UnknownAccountName
}

// Categories is the canonical category list offered by the UI.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Health",
	"Entertainment",
	"Shopping",
	"Salary",
	"Investment",
	"Transfer",
	"Other",
}
