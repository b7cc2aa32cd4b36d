// Package interfaces defines service contracts for WealthFlow
package interfaces

import (
	"context"
	"errors"

	"github.com/wealthflow/wealthflow/internal/models"
)

// ErrNotFound is returned by the ledger store when a collection has
// never been written. First-run seeding keys off this condition.
var ErrNotFound = errors.New("collection not found")

// LedgerStore persists the three entity collections as whole JSON
// blobs. Every mutation replaces the full collection; there is no
// per-record patching.
type LedgerStore interface {
	LoadAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error

	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []models.Transaction) error

	LoadStocks(ctx context.Context) ([]models.Stock, error)
	SaveStocks(ctx context.Context, stocks []models.Stock) error

	// SaveLedger persists accounts and transactions in a single atomic
	// commit so a crash cannot leave one collection updated without the
	// other.
	SaveLedger(ctx context.Context, accounts []models.Account, transactions []models.Transaction) error

	Close() error
}
