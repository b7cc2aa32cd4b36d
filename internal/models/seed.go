package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedData returns the built-in sample dataset used when the store is
// empty on first run: three accounts, five transactions referencing
// them, and three stock holdings. IDs are generated fresh; the
// transactions reference the returned accounts by ID.
func SeedData(now time.Time) ([]Account, []Transaction, []Stock) {
	primary := Account{
		ID:       uuid.NewString(),
		Name:     "CTBC Primary",
		Type:     AccountBank,
		Balance:  decimal.NewFromInt(150000),
		Currency: "TWD",
	}
	savings := Account{
		ID:       uuid.NewString(),
		Name:     "E.Sun Savings",
		Type:     AccountBank,
		Balance:  decimal.NewFromInt(500000),
		Currency: "TWD",
	}
	wallet := Account{
		ID:       uuid.NewString(),
		Name:     "Wallet Cash",
		Type:     AccountCash,
		Balance:  decimal.NewFromInt(3500),
		Currency: "TWD",
	}

	accounts := []Account{primary, savings, wallet}

	transactions := []Transaction{
		{
			ID:          uuid.NewString(),
			AccountID:   primary.ID,
			Date:        "2023-10-01",
			Amount:      decimal.NewFromInt(50000),
			Type:        TypeIncome,
			Category:    "Salary",
			Description: "October Salary",
		},
		{
			ID:          uuid.NewString(),
			AccountID:   wallet.ID,
			Date:        "2023-10-02",
			Amount:      decimal.NewFromInt(200),
			Type:        TypeExpense,
			Category:    "Food & Dining",
			Description: "Lunch at 7-11",
		},
		{
			ID:          uuid.NewString(),
			AccountID:   primary.ID,
			Date:        "2023-10-03",
			Amount:      decimal.NewFromInt(1200),
			Type:        TypeExpense,
			Category:    "Utilities",
			Description: "Electricity Bill",
		},
		{
			ID:          uuid.NewString(),
			AccountID:   primary.ID,
			Date:        "2023-10-05",
			Amount:      decimal.NewFromInt(20000),
			Type:        TypeExpense,
			Category:    "Housing",
			Description: "Rent",
		},
		{
			ID:          uuid.NewString(),
			AccountID:   wallet.ID,
			Date:        "2023-10-06",
			Amount:      decimal.NewFromInt(500),
			Type:        TypeExpense,
			Category:    "Transportation",
			Description: "EasyCard Topup",
		},
	}

	stocks := []Stock{
		{
			ID:           uuid.NewString(),
			Symbol:       "2330.TW",
			Name:         "TSMC",
			Market:       MarketTW,
			Quantity:     decimal.NewFromInt(1000),
			AvgCost:      decimal.NewFromInt(550),
			CurrentPrice: decimal.NewFromInt(980),
			LastUpdated:  now,
		},
		{
			ID:           uuid.NewString(),
			Symbol:       "AAPL",
			Name:         "Apple Inc.",
			Market:       MarketUS,
			Quantity:     decimal.NewFromInt(10),
			AvgCost:      decimal.NewFromInt(150),
			CurrentPrice: decimal.NewFromInt(180),
			LastUpdated:  now,
		},
		{
			ID:           uuid.NewString(),
			Symbol:       "0050.TW",
			Name:         "Yuanta Taiwan 50",
			Market:       MarketTW,
			Quantity:     decimal.NewFromInt(2000),
			AvgCost:      decimal.NewFromInt(120),
			CurrentPrice: decimal.NewFromInt(175),
			LastUpdated:  now,
		},
	}

	return accounts, transactions, stocks
}
