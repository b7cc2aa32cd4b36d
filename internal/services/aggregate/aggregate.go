// Package aggregate computes read-only derived views from a domain
// snapshot. Every function here is a pure single pass over small
// user-entered collections; nothing is cached or mutated.
package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/models"
)

var hundred = decimal.NewFromInt(100)

// NoExpenseCategory is the sentinel returned when no expense
// transactions exist.
const NoExpenseCategory = "None"

// TotalAssets sums all account balances. Sums are unweighted by
// currency; no conversion is performed anywhere in the system.
func TotalAssets(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// MonthlyFlow sums income and expense for transactions whose date
// carries the given "YYYY-MM" prefix. Matching is a string-prefix
// test: a malformed date silently excludes the record. Transfers
// count toward neither side.
func MonthlyFlow(transactions []models.Transaction, yearMonth string) models.MonthlyFlow {
	flow := models.MonthlyFlow{Month: yearMonth, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		if !strings.HasPrefix(t.Date, yearMonth) {
			continue
		}
		switch t.Type {
		case models.TypeIncome:
			flow.Income = flow.Income.Add(t.Amount)
		case models.TypeExpense:
			flow.Expense = flow.Expense.Add(t.Amount)
		}
	}
	return flow
}

// CategoryBreakdown groups expense transactions by category and
// returns per-category totals sorted descending. Ties keep the
// first-encountered category order.
func CategoryBreakdown(transactions []models.Transaction) []models.CategoryTotal {
	index := make(map[string]int)
	var totals []models.CategoryTotal

	for _, t := range transactions {
		if t.Type != models.TypeExpense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, models.CategoryTotal{Category: t.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.Cmp(totals[j].Total) > 0
	})

	return totals
}

// TopExpenseCategory returns the largest expense category, or the
// NoExpenseCategory sentinel with a zero total when there are no
// expense transactions.
func TopExpenseCategory(transactions []models.Transaction) models.CategoryTotal {
	breakdown := CategoryBreakdown(transactions)
	if len(breakdown) == 0 {
		return models.CategoryTotal{Category: NoExpenseCategory, Total: decimal.Zero}
	}
	return breakdown[0]
}

// MonthlySeries groups the whole history by "YYYY-MM" date prefix, one
// entry per distinct prefix, sorted ascending lexicographically
// (chronological for well-formed ISO dates).
func MonthlySeries(transactions []models.Transaction) []models.MonthlyFlow {
	index := make(map[string]int)
	var series []models.MonthlyFlow

	for _, t := range transactions {
		month := t.YearMonth()
		i, ok := index[month]
		if !ok {
			i = len(series)
			index[month] = i
			series = append(series, models.MonthlyFlow{Month: month, Income: decimal.Zero, Expense: decimal.Zero})
		}
		switch t.Type {
		case models.TypeIncome:
			series[i].Income = series[i].Income.Add(t.Amount)
		case models.TypeExpense:
			series[i].Expense = series[i].Expense.Add(t.Amount)
		}
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series
}

// PortfolioValuation aggregates market value and cost basis across all
// holdings. PnLPercent is 0 when the total cost is zero.
func PortfolioValuation(stocks []models.Stock) models.PortfolioValuation {
	marketValue := decimal.Zero
	cost := decimal.Zero
	for _, s := range stocks {
		marketValue = marketValue.Add(s.Quantity.Mul(s.CurrentPrice))
		cost = cost.Add(s.Quantity.Mul(s.AvgCost))
	}

	pnl := marketValue.Sub(cost)
	pct := decimal.Zero
	if !cost.IsZero() {
		pct = pnl.Div(cost).Mul(hundred)
	}

	return models.PortfolioValuation{
		MarketValue:   marketValue,
		Cost:          cost,
		UnrealizedPnL: pnl,
		PnLPercent:    pct,
	}
}

// HoldingPerformance computes the single-holding gain view. A holding
// with a zero cost basis reports a 0 gain percent instead of an
// undefined value.
func HoldingPerformance(s models.Stock) models.HoldingPerformance {
	marketValue := s.Quantity.Mul(s.CurrentPrice)
	costBasis := s.Quantity.Mul(s.AvgCost)
	gain := marketValue.Sub(costBasis)

	pct := decimal.Zero
	if !costBasis.IsZero() {
		pct = gain.Div(costBasis).Mul(hundred)
	}

	return models.HoldingPerformance{
		Stock:       s,
		MarketValue: marketValue,
		Gain:        gain,
		GainPercent: pct,
	}
}

// Summary builds the dashboard headline figures for the given month.
// NetWorth equals TotalAssets: no liability tracking exists, and the
// stock portfolio is valued independently of cash accounts.
func Summary(accounts []models.Account, transactions []models.Transaction, yearMonth string) models.FinancialSummary {
	total := TotalAssets(accounts)
	flow := MonthlyFlow(transactions, yearMonth)
	top := TopExpenseCategory(transactions)

	return models.FinancialSummary{
		TotalAssets:        total,
		NetWorth:           total,
		MonthlyIncome:      flow.Income,
		MonthlyExpense:     flow.Expense,
		TopExpenseCategory: top.Category,
	}
}
