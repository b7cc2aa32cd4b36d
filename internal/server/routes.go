package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/categories", s.handleCategories)

	// Accounts
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/", s.handleAccountByID)

	// Transactions
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Stocks
	mux.HandleFunc("/api/stocks", s.handleStocks)
	mux.HandleFunc("/api/stocks/refresh", s.handleStockRefresh)
	mux.HandleFunc("/api/stocks/", s.handleStockByID)

	// Dashboard
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/dashboard/advice", s.handleAdvice)

	// Reports
	mux.HandleFunc("/api/reports/categories", s.handleReportCategories)
	mux.HandleFunc("/api/reports/monthly", s.handleReportMonthly)

	// Portfolio
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
}
