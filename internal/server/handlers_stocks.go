package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
	"github.com/wealthflow/wealthflow/internal/services/reconcile"
)

// --- Stock handlers ---

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleStockList(w, r)
	case http.MethodPost:
		s.handleStockCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleStockList(w http.ResponseWriter, r *http.Request) {
	stocks, err := s.app.Portfolio.ListStocks(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing stocks: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stocks": stocks,
	})
}

func (s *Server) handleStockCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol   string          `json:"symbol"`
		Name     string          `json:"name"`
		Market   models.Market   `json:"market"`
		Quantity decimal.Decimal `json:"quantity"`
		AvgCost  decimal.Decimal `json:"avg_cost"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	stock, err := s.app.Portfolio.AddStock(r.Context(), req.Symbol, req.Name, req.Market, req.Quantity, req.AvgCost)
	if err != nil {
		if errors.Is(err, reconcile.ErrEmptySymbol) || errors.Is(err, reconcile.ErrInvalidQuantity) || errors.Is(err, reconcile.ErrInvalidCost) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error adding stock: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, stock)
}

func (s *Server) handleStockByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := PathParam(r, "/api/stocks/")
	if id == "" || id == "refresh" {
		WriteError(w, http.StatusBadRequest, "Stock id is required")
		return
	}

	if err := s.app.Portfolio.DeleteStock(r.Context(), id); err != nil {
		if errors.Is(err, reconcile.ErrStockNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error deleting stock: %v", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleStockRefresh reconciles externally sourced quotes into the
// stock collection. Gateway failures leave stored prices untouched:
// a missing API key maps to 503 with a distinct code, everything else
// (network, malformed response) to 502.
func (s *Server) handleStockRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	stocks, err := s.app.Portfolio.RefreshPrices(r.Context())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotConfigured) {
			WriteErrorWithCode(w, http.StatusServiceUnavailable,
				"Price updates unavailable. Check your API key.", "not_configured")
			return
		}
		WriteErrorWithCode(w, http.StatusBadGateway,
			fmt.Sprintf("Failed to update prices: %v", err), "gateway_error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stocks": stocks,
	})
}
