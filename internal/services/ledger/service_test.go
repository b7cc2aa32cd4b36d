package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

// mockStore is an in-memory LedgerStore for service tests.
type mockStore struct {
	accounts     []models.Account
	transactions []models.Transaction
	stocks       []models.Stock

	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *mockStore) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.accounts, nil
}

func (m *mockStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts = accounts
	return nil
}

func (m *mockStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.transactions, nil
}

func (m *mockStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.transactions = transactions
	return nil
}

func (m *mockStore) LoadStocks(ctx context.Context) ([]models.Stock, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.stocks, nil
}

func (m *mockStore) SaveStocks(ctx context.Context, stocks []models.Stock) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stocks = stocks
	return nil
}

func (m *mockStore) SaveLedger(ctx context.Context, accounts []models.Account, transactions []models.Transaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveCalls++
	m.accounts = accounts
	m.transactions = transactions
	return nil
}

func (m *mockStore) Close() error { return nil }

var _ interfaces.LedgerStore = (*mockStore)(nil)

func newTestService(store *mockStore) *Service {
	return NewService(store, common.NewSilentLogger())
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRecordTransaction_IncomeCreditsAccount(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{{ID: "a1", Name: "Checking", Type: models.AccountBank, Balance: dec("1000"), Currency: "TWD"}},
	}
	svc := newTestService(store)

	_, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Date:      "2023-10-05",
		Amount:    dec("500"),
		Type:      models.TypeIncome,
		Category:  "Salary",
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if got := store.accounts[0].Balance; !got.Equal(dec("1500")) {
		t.Errorf("expected balance 1500, got %s", got)
	}
}

func TestRecordTransaction_ExpenseDebitsAccount(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{{ID: "a1", Name: "Checking", Type: models.AccountBank, Balance: dec("1000"), Currency: "TWD"}},
	}
	svc := newTestService(store)

	_, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Date:      "2023-10-06",
		Amount:    dec("200"),
		Type:      models.TypeExpense,
		Category:  "Food & Dining",
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if got := store.accounts[0].Balance; !got.Equal(dec("800")) {
		t.Errorf("expected balance 800, got %s", got)
	}
}

func TestRecordTransaction_TransferDebitsSourceOnly(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{
			{ID: "src", Name: "Checking", Type: models.AccountBank, Balance: dec("1000"), Currency: "TWD"},
			{ID: "other", Name: "Savings", Type: models.AccountBank, Balance: dec("5000"), Currency: "TWD"},
		},
	}
	svc := newTestService(store)

	_, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "src",
		Date:      "2023-10-07",
		Amount:    dec("300"),
		Type:      models.TypeTransfer,
		Category:  "Transfer",
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if got := store.accounts[0].Balance; !got.Equal(dec("700")) {
		t.Errorf("expected source balance 700, got %s", got)
	}
	if got := store.accounts[1].Balance; !got.Equal(dec("5000")) {
		t.Errorf("expected other balance unchanged at 5000, got %s", got)
	}
}

func TestRecordTransaction_ZeroAmountRejected(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Amount:    decimal.Zero,
		Type:      models.TypeExpense,
	})
	if !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Error("rejected transaction must not be persisted")
	}
}

func TestRecordTransaction_NegativeAmountRejected(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Amount:    dec("-50"),
		Type:      models.TypeExpense,
	})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestRecordTransaction_InvalidTypeRejected(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Amount:    dec("50"),
		Type:      models.TransactionType("Withdrawal"),
	})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestRecordTransaction_MissingAccountStillRecorded(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{{ID: "a1", Balance: dec("1000")}},
	}
	svc := newTestService(store)

	tx, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "gone",
		Date:      "2023-10-08",
		Amount:    dec("100"),
		Type:      models.TypeExpense,
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if got := store.accounts[0].Balance; !got.Equal(dec("1000")) {
		t.Errorf("expected balance unchanged at 1000, got %s", got)
	}
	if len(store.transactions) != 1 || store.transactions[0].ID != tx.ID {
		t.Error("transaction with a dangling account reference must still be recorded")
	}
}

func TestRecordTransaction_PrependsNewest(t *testing.T) {
	store := &mockStore{
		transactions: []models.Transaction{{ID: "old", Amount: dec("10"), Type: models.TypeExpense}},
	}
	svc := newTestService(store)

	tx, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Amount:    dec("20"),
		Type:      models.TypeExpense,
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if store.transactions[0].ID != tx.ID {
		t.Errorf("expected new transaction first, got %s", store.transactions[0].ID)
	}
	if store.transactions[1].ID != "old" {
		t.Errorf("expected prior transaction preserved second, got %s", store.transactions[1].ID)
	}
}

func TestRecordTransaction_FillsIDAndDefaultCategory(t *testing.T) {
	svc := newTestService(&mockStore{})

	tx, err := svc.RecordTransaction(context.Background(), models.Transaction{
		AccountID: "a1",
		Amount:    dec("20"),
		Type:      models.TypeExpense,
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}
	if tx.ID == "" {
		t.Error("expected generated transaction ID")
	}
	if tx.Category != "Other" {
		t.Errorf("expected default category Other, got %q", tx.Category)
	}
}

func TestRecordTransaction_BalanceSequence(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{{ID: "a1", Balance: dec("0")}},
	}
	svc := newTestService(store)
	ctx := context.Background()

	steps := []struct {
		amount string
		txType models.TransactionType
		want   string
	}{
		{"50000", models.TypeIncome, "50000"},
		{"200", models.TypeExpense, "49800"},
		{"1200", models.TypeExpense, "48600"},
		{"500", models.TypeTransfer, "48100"},
	}

	for _, step := range steps {
		_, err := svc.RecordTransaction(ctx, models.Transaction{
			AccountID: "a1",
			Amount:    dec(step.amount),
			Type:      step.txType,
		})
		if err != nil {
			t.Fatalf("RecordTransaction failed: %v", err)
		}
		if got := store.accounts[0].Balance; !got.Equal(dec(step.want)) {
			t.Fatalf("expected balance %s after %s %s, got %s", step.want, step.txType, step.amount, got)
		}
	}

	if len(store.transactions) != 4 {
		t.Errorf("expected 4 recorded transactions, got %d", len(store.transactions))
	}
}

func TestAddAccount_Defaults(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	account, err := svc.AddAccount(context.Background(), "  Emergency Fund  ", models.AccountBank, dec("10000"), "")
	if err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	if account.Name != "Emergency Fund" {
		t.Errorf("expected trimmed name, got %q", account.Name)
	}
	if account.Currency != "TWD" {
		t.Errorf("expected default currency TWD, got %q", account.Currency)
	}
	if account.ID == "" {
		t.Error("expected generated account ID")
	}
	if len(store.accounts) != 1 {
		t.Errorf("expected 1 stored account, got %d", len(store.accounts))
	}
}

func TestAddAccount_Validation(t *testing.T) {
	svc := newTestService(&mockStore{})
	ctx := context.Background()

	if _, err := svc.AddAccount(ctx, "   ", models.AccountBank, dec("0"), ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.AddAccount(ctx, "Vault", models.AccountType("Crypto"), dec("0"), ""); !errors.Is(err, ErrInvalidAccountType) {
		t.Errorf("expected ErrInvalidAccountType, got %v", err)
	}
}

func TestDeleteAccount_NoCascade(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{
			{ID: "a1", Name: "Checking"},
			{ID: "a2", Name: "Savings"},
		},
		transactions: []models.Transaction{{ID: "t1", AccountID: "a1", Amount: dec("10"), Type: models.TypeExpense}},
	}
	svc := newTestService(store)

	if err := svc.DeleteAccount(context.Background(), "a1"); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if len(store.accounts) != 1 || store.accounts[0].ID != "a2" {
		t.Error("expected only a2 to remain")
	}
	if len(store.transactions) != 1 {
		t.Error("transactions must survive account deletion")
	}

	views, err := svc.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if views[0].AccountName != models.UnknownAccountName {
		t.Errorf("expected dangling reference to resolve to %q, got %q", models.UnknownAccountName, views[0].AccountName)
	}
}

func TestDeleteAccount_NotFound(t *testing.T) {
	svc := newTestService(&mockStore{})

	err := svc.DeleteAccount(context.Background(), "missing")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestListTransactions_ResolvesNames(t *testing.T) {
	store := &mockStore{
		accounts: []models.Account{{ID: "a1", Name: "Checking"}},
		transactions: []models.Transaction{
			{ID: "t1", AccountID: "a1", Amount: dec("10"), Type: models.TypeExpense},
			{ID: "t2", AccountID: "gone", Amount: dec("20"), Type: models.TypeExpense},
		},
	}
	svc := newTestService(store)

	views, err := svc.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if views[0].AccountName != "Checking" {
		t.Errorf("expected Checking, got %q", views[0].AccountName)
	}
	if views[1].AccountName != models.UnknownAccountName {
		t.Errorf("expected %q, got %q", models.UnknownAccountName, views[1].AccountName)
	}
}
