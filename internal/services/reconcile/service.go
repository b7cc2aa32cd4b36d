// Package reconcile owns the stock collection and merges externally
// sourced price quotes into it.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

var (
	ErrEmptySymbol     = errors.New("stock symbol is required")
	ErrInvalidQuantity = errors.New("stock quantity must not be negative")
	ErrInvalidCost     = errors.New("stock average cost must not be negative")
	ErrStockNotFound   = errors.New("stock not found")
)

// Service implements interfaces.PortfolioService.
// advisor may be nil when no API key is configured; RefreshPrices then
// fails with interfaces.ErrNotConfigured.
type Service struct {
	store   interfaces.LedgerStore
	advisor interfaces.AdvisorClient
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing
}

// NewService creates a new reconciliation service.
func NewService(store interfaces.LedgerStore, advisor interfaces.AdvisorClient, logger *common.Logger) *Service {
	return &Service{store: store, advisor: advisor, logger: logger, now: time.Now}
}

// ApplyQuotes merges quotes into stocks and returns the updated
// collection. Matching is case-insensitive exact symbol equality; a
// matched holding gets the quoted price and the given timestamp, an
// unmatched holding is returned unchanged, and a quote with no
// matching holding is dropped. The collection never grows.
func ApplyQuotes(stocks []models.Stock, quotes []models.StockQuote, now time.Time) []models.Stock {
	updated := make([]models.Stock, len(stocks))
	copy(updated, stocks)

	for i := range updated {
		for _, q := range quotes {
			if !strings.EqualFold(updated[i].Symbol, q.Symbol) {
				continue
			}
			updated[i].CurrentPrice = q.Price
			updated[i].LastUpdated = now
			break
		}
	}

	return updated
}

// RefreshPrices fetches quotes for every held symbol and merges them
// back into the stored collection. On any gateway failure the stored
// prices are left untouched; callers re-fetch stocks before retrying.
func (s *Service) RefreshPrices(ctx context.Context) ([]models.Stock, error) {
	stocks, err := s.store.LoadStocks(ctx)
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return stocks, nil
	}
	if s.advisor == nil {
		return nil, interfaces.ErrNotConfigured
	}

	symbols := make([]string, len(stocks))
	for i, stock := range stocks {
		symbols[i] = stock.Symbol
	}

	quotes, err := s.advisor.FetchQuotes(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Price refresh failed; stored prices unchanged")
		return nil, err
	}

	updated := ApplyQuotes(stocks, quotes, s.now())

	if err := s.store.SaveStocks(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("holdings", len(updated)).
		Int("quotes", len(quotes)).
		Msg("Prices refreshed")

	return updated, nil
}

func (s *Service) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return s.store.LoadStocks(ctx)
}

// AddStock creates a holding. The symbol is upper-cased, the name
// defaults to the symbol, and the current price starts at the average
// cost until the first quote refresh.
func (s *Service) AddStock(ctx context.Context, symbol, name string, market models.Market, quantity, avgCost decimal.Decimal) (models.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.Stock{}, ErrEmptySymbol
	}
	if quantity.IsNegative() {
		return models.Stock{}, ErrInvalidQuantity
	}
	if avgCost.IsNegative() {
		return models.Stock{}, ErrInvalidCost
	}
	if name == "" {
		name = symbol
	}
	if market == "" {
		market = models.MarketOther
	}

	stocks, err := s.store.LoadStocks(ctx)
	if err != nil {
		return models.Stock{}, err
	}

	stock := models.Stock{
		ID:           uuid.NewString(),
		Symbol:       symbol,
		Name:         name,
		Market:       market,
		Quantity:     quantity,
		AvgCost:      avgCost,
		CurrentPrice: avgCost,
		LastUpdated:  s.now(),
	}

	if err := s.store.SaveStocks(ctx, append(stocks, stock)); err != nil {
		return models.Stock{}, err
	}

	s.logger.Info().Str("id", stock.ID).Str("symbol", stock.Symbol).Msg("Stock added")
	return stock, nil
}

func (s *Service) DeleteStock(ctx context.Context, id string) error {
	stocks, err := s.store.LoadStocks(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Stock, 0, len(stocks))
	found := false
	for _, stock := range stocks {
		if stock.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, stock)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrStockNotFound, id)
	}

	if err := s.store.SaveStocks(ctx, remaining); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Stock deleted")
	return nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
