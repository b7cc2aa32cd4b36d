// Package storage implements the ledger store using BadgerHold.
// Each entity collection is persisted as one JSON blob under a fixed
// key; every save replaces the whole collection.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

// Collection keys. One blob per entity collection.
const (
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
	KeyStocks       = "stocks"
)

// CollectionEntry is the stored record: a collection key and its JSON
// serialized value.
type CollectionEntry struct {
	Key       string `badgerhold:"key"`
	Value     []byte
	UpdatedAt time.Time
}

// Store implements interfaces.LedgerStore backed by BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (creating if needed) the ledger store at the given path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store path %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Ledger store opened")

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// load reads and unmarshals one collection blob into dest.
// Returns interfaces.ErrNotFound when the key has never been written.
func (s *Store) load(key string, dest interface{}) error {
	var entry CollectionEntry
	if err := s.db.Get(key, &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("collection '%s': %w", key, interfaces.ErrNotFound)
		}
		return fmt.Errorf("failed to load collection '%s': %w", key, err)
	}
	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return fmt.Errorf("failed to decode collection '%s': %w", key, err)
	}
	return nil
}

// save marshals and upserts one collection blob.
func (s *Store) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection '%s': %w", key, err)
	}
	entry := CollectionEntry{Key: key, Value: data, UpdatedAt: time.Now()}
	if err := s.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to save collection '%s': %w", key, err)
	}
	return nil
}

func (s *Store) LoadAccounts(_ context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.load(KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) SaveAccounts(_ context.Context, accounts []models.Account) error {
	return s.save(KeyAccounts, accounts)
}

func (s *Store) LoadTransactions(_ context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.load(KeyTransactions, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Store) SaveTransactions(_ context.Context, transactions []models.Transaction) error {
	return s.save(KeyTransactions, transactions)
}

func (s *Store) LoadStocks(_ context.Context) ([]models.Stock, error) {
	var stocks []models.Stock
	if err := s.load(KeyStocks, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (s *Store) SaveStocks(_ context.Context, stocks []models.Stock) error {
	return s.save(KeyStocks, stocks)
}

// SaveLedger writes the accounts and transactions blobs inside a single
// Badger transaction. Either both collections commit or neither does;
// a crash between the two writes cannot leave the ledger inconsistent.
func (s *Store) SaveLedger(_ context.Context, accounts []models.Account, transactions []models.Transaction) error {
	accountsData, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	transactionsData, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}

	now := time.Now()
	err = s.db.Badger().Update(func(txn *badger.Txn) error {
		accEntry := CollectionEntry{Key: KeyAccounts, Value: accountsData, UpdatedAt: now}
		if err := s.db.TxUpsert(txn, KeyAccounts, &accEntry); err != nil {
			return err
		}
		txEntry := CollectionEntry{Key: KeyTransactions, Value: transactionsData, UpdatedAt: now}
		return s.db.TxUpsert(txn, KeyTransactions, &txEntry)
	})
	if err != nil {
		return fmt.Errorf("failed to commit ledger: %w", err)
	}

	s.logger.Debug().
		Int("accounts", len(accounts)).
		Int("transactions", len(transactions)).
		Msg("Ledger committed")

	return nil
}

// Ensure Store implements LedgerStore
var _ interfaces.LedgerStore = (*Store)(nil)
