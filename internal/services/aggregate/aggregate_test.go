package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotalAssets(t *testing.T) {
	accounts := []models.Account{
		{ID: "a1", Balance: dec("150000")},
		{ID: "a2", Balance: dec("500000")},
		{ID: "a3", Balance: dec("3500")},
	}

	if got := TotalAssets(accounts); !got.Equal(dec("653500")) {
		t.Errorf("expected 653500, got %s", got)
	}
}

func TestTotalAssets_Empty(t *testing.T) {
	if got := TotalAssets(nil); !got.IsZero() {
		t.Errorf("expected 0 for no accounts, got %s", got)
	}
}

func TestTotalAssets_SumsAcrossCurrenciesUnconverted(t *testing.T) {
	accounts := []models.Account{
		{ID: "a1", Balance: dec("1000"), Currency: "TWD"},
		{ID: "a2", Balance: dec("100"), Currency: "USD"},
	}

	// Balances add as raw numbers regardless of currency.
	if got := TotalAssets(accounts); !got.Equal(dec("1100")) {
		t.Errorf("expected 1100, got %s", got)
	}
}

func TestMonthlyFlow(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-01", Amount: dec("50000"), Type: models.TypeIncome},
		{Date: "2023-10-05", Amount: dec("200"), Type: models.TypeExpense},
		{Date: "2023-10-10", Amount: dec("1200"), Type: models.TypeExpense},
		{Date: "2023-09-28", Amount: dec("9999"), Type: models.TypeExpense},
	}

	flow := MonthlyFlow(transactions, "2023-10")
	if !flow.Income.Equal(dec("50000")) {
		t.Errorf("expected income 50000, got %s", flow.Income)
	}
	if !flow.Expense.Equal(dec("1400")) {
		t.Errorf("expected expense 1400, got %s", flow.Expense)
	}
}

func TestMonthlyFlow_TransfersExcluded(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-01", Amount: dec("500"), Type: models.TypeTransfer},
	}

	flow := MonthlyFlow(transactions, "2023-10")
	if !flow.Income.IsZero() || !flow.Expense.IsZero() {
		t.Errorf("transfers must count toward neither side, got income=%s expense=%s", flow.Income, flow.Expense)
	}
}

func TestMonthlyFlow_MalformedDateExcluded(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "10/05/2023", Amount: dec("100"), Type: models.TypeExpense},
		{Date: "", Amount: dec("100"), Type: models.TypeExpense},
	}

	flow := MonthlyFlow(transactions, "2023-10")
	if !flow.Expense.IsZero() {
		t.Errorf("malformed dates must be silently excluded, got expense %s", flow.Expense)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-05", Amount: dec("200"), Type: models.TypeExpense, Category: "Food & Dining"},
		{Date: "2023-10-10", Amount: dec("1200"), Type: models.TypeExpense, Category: "Utilities"},
		{Date: "2023-10-11", Amount: dec("300"), Type: models.TypeExpense, Category: "Food & Dining"},
		{Date: "2023-10-01", Amount: dec("50000"), Type: models.TypeIncome, Category: "Salary"},
	}

	breakdown := CategoryBreakdown(transactions)
	if len(breakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(breakdown))
	}
	if breakdown[0].Category != "Utilities" || !breakdown[0].Total.Equal(dec("1200")) {
		t.Errorf("expected Utilities 1200 first, got %s %s", breakdown[0].Category, breakdown[0].Total)
	}
	if breakdown[1].Category != "Food & Dining" || !breakdown[1].Total.Equal(dec("500")) {
		t.Errorf("expected Food & Dining 500 second, got %s %s", breakdown[1].Category, breakdown[1].Total)
	}
}

func TestCategoryBreakdown_TiesKeepEncounterOrder(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-05", Amount: dec("100"), Type: models.TypeExpense, Category: "Shopping"},
		{Date: "2023-10-06", Amount: dec("100"), Type: models.TypeExpense, Category: "Health"},
	}

	breakdown := CategoryBreakdown(transactions)
	if breakdown[0].Category != "Shopping" || breakdown[1].Category != "Health" {
		t.Errorf("tied totals must keep first-encounter order, got %s then %s",
			breakdown[0].Category, breakdown[1].Category)
	}
}

func TestTopExpenseCategory(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-05", Amount: dec("200"), Type: models.TypeExpense, Category: "Food"},
		{Date: "2023-10-01", Amount: dec("1000"), Type: models.TypeIncome, Category: "Salary"},
	}

	top := TopExpenseCategory(transactions)
	if top.Category != "Food" || !top.Total.Equal(dec("200")) {
		t.Errorf("expected Food 200, got %s %s", top.Category, top.Total)
	}
}

func TestTopExpenseCategory_NoExpenses(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-01", Amount: dec("1000"), Type: models.TypeIncome, Category: "Salary"},
	}

	top := TopExpenseCategory(transactions)
	if top.Category != NoExpenseCategory {
		t.Errorf("expected %q, got %q", NoExpenseCategory, top.Category)
	}
	if !top.Total.IsZero() {
		t.Errorf("expected zero total, got %s", top.Total)
	}
}

func TestMonthlySeries(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-10-25", Amount: dec("20000"), Type: models.TypeExpense},
		{Date: "2023-10-01", Amount: dec("50000"), Type: models.TypeIncome},
	}

	series := MonthlySeries(transactions)
	if len(series) != 1 {
		t.Fatalf("expected a single month entry, got %d", len(series))
	}
	entry := series[0]
	if entry.Month != "2023-10" {
		t.Errorf("expected month 2023-10, got %s", entry.Month)
	}
	if !entry.Income.Equal(dec("50000")) || !entry.Expense.Equal(dec("20000")) {
		t.Errorf("expected income 50000 expense 20000, got %s / %s", entry.Income, entry.Expense)
	}
}

func TestMonthlySeries_SortedAscending(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2023-11-01", Amount: dec("10"), Type: models.TypeExpense},
		{Date: "2023-09-01", Amount: dec("10"), Type: models.TypeExpense},
		{Date: "2023-10-01", Amount: dec("10"), Type: models.TypeExpense},
	}

	series := MonthlySeries(transactions)
	want := []string{"2023-09", "2023-10", "2023-11"}
	for i, month := range want {
		if series[i].Month != month {
			t.Errorf("expected series[%d]=%s, got %s", i, month, series[i].Month)
		}
	}
}

func TestPortfolioValuation(t *testing.T) {
	stocks := []models.Stock{
		{Symbol: "AAPL", Quantity: dec("10"), AvgCost: dec("150"), CurrentPrice: dec("180")},
		{Symbol: "TSLA", Quantity: dec("5"), AvgCost: dec("200"), CurrentPrice: dec("200")},
	}

	v := PortfolioValuation(stocks)
	if !v.MarketValue.Equal(dec("2800")) {
		t.Errorf("expected market value 2800, got %s", v.MarketValue)
	}
	if !v.Cost.Equal(dec("2500")) {
		t.Errorf("expected cost 2500, got %s", v.Cost)
	}
	if !v.UnrealizedPnL.Equal(dec("300")) {
		t.Errorf("expected pnl 300, got %s", v.UnrealizedPnL)
	}
	if !v.PnLPercent.Equal(dec("12")) {
		t.Errorf("expected 12 percent, got %s", v.PnLPercent)
	}
}

func TestPortfolioValuation_ZeroCost(t *testing.T) {
	stocks := []models.Stock{
		{Symbol: "GIFT", Quantity: dec("10"), AvgCost: dec("0"), CurrentPrice: dec("50")},
	}

	v := PortfolioValuation(stocks)
	if !v.PnLPercent.IsZero() {
		t.Errorf("zero cost basis must report 0 percent, got %s", v.PnLPercent)
	}
	if !v.MarketValue.Equal(dec("500")) {
		t.Errorf("expected market value 500, got %s", v.MarketValue)
	}
}

func TestHoldingPerformance(t *testing.T) {
	p := HoldingPerformance(models.Stock{
		Symbol: "AAPL", Quantity: dec("10"), AvgCost: dec("150"), CurrentPrice: dec("180"),
	})

	if !p.MarketValue.Equal(dec("1800")) {
		t.Errorf("expected market value 1800, got %s", p.MarketValue)
	}
	if !p.Gain.Equal(dec("300")) {
		t.Errorf("expected gain 300, got %s", p.Gain)
	}
	if !p.GainPercent.Equal(dec("20")) {
		t.Errorf("expected 20 percent, got %s", p.GainPercent)
	}
}

func TestHoldingPerformance_ZeroCost(t *testing.T) {
	p := HoldingPerformance(models.Stock{
		Symbol: "GIFT", Quantity: dec("10"), AvgCost: dec("0"), CurrentPrice: dec("50"),
	})
	if !p.GainPercent.IsZero() {
		t.Errorf("zero cost basis must report 0 percent, got %s", p.GainPercent)
	}
}

func TestSummary(t *testing.T) {
	accounts := []models.Account{{ID: "a1", Balance: dec("1000")}}
	transactions := []models.Transaction{
		{Date: "2023-10-05", Amount: dec("200"), Type: models.TypeExpense, Category: "Food"},
		{Date: "2023-10-01", Amount: dec("500"), Type: models.TypeIncome, Category: "Salary"},
	}

	s := Summary(accounts, transactions, "2023-10")
	if !s.TotalAssets.Equal(dec("1000")) {
		t.Errorf("expected total assets 1000, got %s", s.TotalAssets)
	}
	if !s.NetWorth.Equal(s.TotalAssets) {
		t.Errorf("net worth must equal total assets, got %s vs %s", s.NetWorth, s.TotalAssets)
	}
	if !s.MonthlyIncome.Equal(dec("500")) || !s.MonthlyExpense.Equal(dec("200")) {
		t.Errorf("expected income 500 expense 200, got %s / %s", s.MonthlyIncome, s.MonthlyExpense)
	}
	if s.TopExpenseCategory != "Food" {
		t.Errorf("expected top category Food, got %q", s.TopExpenseCategory)
	}
}
