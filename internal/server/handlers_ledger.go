package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/models"
	"github.com/wealthflow/wealthflow/internal/services/ledger"
)

// --- Account handlers ---

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAccountList(w, r)
	case http.MethodPost:
		s.handleAccountCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.app.Ledger.ListAccounts(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing accounts: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
	})
}

func (s *Server) handleAccountCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string             `json:"name"`
		Type     models.AccountType `json:"type"`
		Balance  decimal.Decimal    `json:"balance"`
		Currency string             `json:"currency"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	account, err := s.app.Ledger.AddAccount(r.Context(), req.Name, req.Type, req.Balance, req.Currency)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyName) || errors.Is(err, ledger.ErrInvalidAccountType) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error adding account: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := PathParam(r, "/api/accounts/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Account id is required")
		return
	}

	if err := s.app.Ledger.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error deleting account: %v", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Transaction handlers ---

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r)
	case http.MethodPost:
		s.handleTransactionCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.app.Ledger.ListTransactions(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing transactions: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
	})
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID   string                 `json:"account_id"`
		Date        string                 `json:"date"`
		Amount      decimal.Decimal        `json:"amount"`
		Type        models.TransactionType `json:"type"`
		Category    string                 `json:"category"`
		Description string                 `json:"description"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := s.app.Ledger.RecordTransaction(r.Context(), models.Transaction{
		AccountID:   req.AccountID,
		Date:        req.Date,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrZeroAmount) || errors.Is(err, ledger.ErrNegativeAmount) || errors.Is(err, ledger.ErrInvalidType) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error recording transaction: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, tx)
}
