package aggregate

import (
	"context"
	"time"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

// Service implements interfaces.AggregateService by loading the
// current snapshot from the store and applying the pure aggregation
// functions. Every call recomputes from scratch.
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new aggregation service.
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// currentMonth returns the "YYYY-MM" prefix of today.
func (s *Service) currentMonth() string {
	return s.now().Format("2006-01")
}

func (s *Service) Summary(ctx context.Context) (models.FinancialSummary, error) {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return models.FinancialSummary{}, err
	}
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return models.FinancialSummary{}, err
	}
	return Summary(accounts, transactions, s.currentMonth()), nil
}

// RecentTransactions returns up to limit transactions in storage order
// (most-recent-first) with account names resolved.
func (s *Service) RecentTransactions(ctx context.Context, limit int) ([]models.TransactionView, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}

	views := make([]models.TransactionView, len(transactions))
	for i, tx := range transactions {
		views[i] = models.TransactionView{
			Transaction: tx,
			AccountName: models.ResolveAccountName(accounts, tx.AccountID),
		}
	}
	return views, nil
}

func (s *Service) CategoryBreakdown(ctx context.Context) ([]models.CategoryTotal, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(transactions), nil
}

func (s *Service) MonthlySeries(ctx context.Context) ([]models.MonthlyFlow, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlySeries(transactions), nil
}

func (s *Service) Portfolio(ctx context.Context) (models.PortfolioValuation, []models.HoldingPerformance, error) {
	stocks, err := s.store.LoadStocks(ctx)
	if err != nil {
		return models.PortfolioValuation{}, nil, err
	}

	holdings := make([]models.HoldingPerformance, len(stocks))
	for i, stock := range stocks {
		holdings[i] = HoldingPerformance(stock)
	}

	return PortfolioValuation(stocks), holdings, nil
}

// Ensure Service implements AggregateService
var _ interfaces.AggregateService = (*Service)(nil)
