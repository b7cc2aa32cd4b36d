// Package ledger maintains the invariant that an account's balance
// reflects its recorded transactions. It is the only mutation path for
// balances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

var (
	// ErrZeroAmount rejects transactions with an amount of exactly zero.
	// A zero amount cannot move a balance and the entry form has never
	// allowed one.
	ErrZeroAmount = errors.New("transaction amount must not be zero")

	// ErrNegativeAmount rejects negative amounts; the sign of a cash
	// movement is carried by the transaction type, not the amount.
	ErrNegativeAmount = errors.New("transaction amount must not be negative")

	ErrInvalidType        = errors.New("unknown transaction type")
	ErrInvalidAccountType = errors.New("unknown account type")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmptyName          = errors.New("account name is required")
)

// Service implements interfaces.LedgerService.
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
}

// NewService creates a new ledger service.
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Apply records tx against the given collections and returns the
// updated collections. The matched account's balance moves by +amount
// for Income and -amount for Expense and Transfer; a transfer debits
// its source account with no corresponding destination credit. When no
// account matches, the balance update is a no-op but the transaction
// is still recorded. The new transaction is prepended: storage order
// is most-recent-first regardless of the date field.
func Apply(accounts []models.Account, transactions []models.Transaction, tx models.Transaction) ([]models.Account, []models.Transaction) {
	updated := make([]models.Account, len(accounts))
	copy(updated, accounts)

	for i := range updated {
		if updated[i].ID != tx.AccountID {
			continue
		}
		if tx.Type == models.TypeIncome {
			updated[i].Balance = updated[i].Balance.Add(tx.Amount)
		} else {
			updated[i].Balance = updated[i].Balance.Sub(tx.Amount)
		}
		break
	}

	result := make([]models.Transaction, 0, len(transactions)+1)
	result = append(result, tx)
	result = append(result, transactions...)

	return updated, result
}

// RecordTransaction validates tx, applies it to the current snapshot,
// and persists both collections in one atomic commit.
func (s *Service) RecordTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.Amount.IsZero() {
		return models.Transaction{}, ErrZeroAmount
	}
	if tx.Amount.IsNegative() {
		return models.Transaction{}, ErrNegativeAmount
	}
	if !models.ValidTransactionType(tx.Type) {
		return models.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Category == "" {
		tx.Category = "Other"
	}

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	updatedAccounts, updatedTransactions := Apply(accounts, transactions, tx)

	if err := s.store.SaveLedger(ctx, updatedAccounts, updatedTransactions); err != nil {
		return models.Transaction{}, err
	}

	s.logger.Info().
		Str("id", tx.ID).
		Str("type", string(tx.Type)).
		Str("category", tx.Category).
		Str("amount", tx.Amount.String()).
		Msg("Transaction recorded")

	return tx, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.store.LoadAccounts(ctx)
}

// AddAccount creates an account with a user-supplied name, type and
// initial balance. Currency defaults to TWD.
func (s *Service) AddAccount(ctx context.Context, name string, accountType models.AccountType, balance decimal.Decimal, currency string) (models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, ErrEmptyName
	}
	if !models.ValidAccountType(accountType) {
		return models.Account{}, fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}
	if currency == "" {
		currency = "TWD"
	}

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     accountType,
		Balance:  balance,
		Currency: currency,
	}

	if err := s.store.SaveAccounts(ctx, append(accounts, account)); err != nil {
		return models.Account{}, err
	}

	s.logger.Info().Str("id", account.ID).Str("name", account.Name).Msg("Account added")
	return account, nil
}

// DeleteAccount removes the account. No cascade: transactions keep
// their now-dangling reference and render as "Unknown".
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Account, 0, len(accounts))
	found := false
	for _, a := range accounts {
		if a.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, a)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	if err := s.store.SaveAccounts(ctx, remaining); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Account deleted")
	return nil
}

// ListTransactions returns all transactions in storage order with
// account names resolved for display.
func (s *Service) ListTransactions(ctx context.Context) ([]models.TransactionView, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
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

// Ensure Service implements LedgerService
var _ interfaces.LedgerService = (*Service)(nil)
