package server

import (
	"fmt"
	"net/http"
)

// recentTransactionLimit matches the dashboard's preview length.
const recentTransactionLimit = 5

// --- Dashboard handlers ---

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.Aggregate.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing summary: %v", err))
		return
	}

	recent, err := s.app.Aggregate.RecentTransactions(r.Context(), recentTransactionLimit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing recent transactions: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary":             summary,
		"recent_transactions": recent,
	})
}

// handleAdvice serves the AI insight sentence. It always returns 200:
// gateway problems degrade to fixed fallback text inside the service.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.Aggregate.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing summary: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"advice": s.app.Advisor.Advice(r.Context(), summary),
	})
}

// --- Report handlers ---

func (s *Server) handleReportCategories(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	breakdown, err := s.app.Aggregate.CategoryBreakdown(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing breakdown: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": breakdown,
	})
}

func (s *Server) handleReportMonthly(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	series, err := s.app.Aggregate.MonthlySeries(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing series: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"months": series,
	})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	valuation, holdings, err := s.app.Aggregate.Portfolio(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error computing portfolio: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valuation": valuation,
		"holdings":  holdings,
	})
}
