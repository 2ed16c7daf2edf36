package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"student-dashboard-backend/internal/analytics"
	"student-dashboard-backend/internal/cache"
	"student-dashboard-backend/internal/categorize"
	"student-dashboard-backend/internal/logger"
	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/store"
	"student-dashboard-backend/internal/wellness"
)

// respondError maps err to a status code and writes {"error": msg}.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, wellness.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, wellness.ErrEmptyResponses):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// invalidate drops cached transaction snapshots after a write.
func (s *Server) invalidate(c *gin.Context) {
	if err := s.cache.Invalidate(c.Request.Context()); err != nil {
		log := logger.FromContext(c.Request.Context())
		log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.store.Ping(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	cacheStatus := "disabled"
	if s.cache.Enabled() {
		cacheStatus = "ok"
		if err := s.cache.Ping(ctx); err != nil {
			cacheStatus = "unavailable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "student-dashboard",
		"cache":   cacheStatus,
	})
}

// getTransactions lists all transactions, newest first, with optional Redis caching
func (s *Server) getTransactions(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []models.Transaction
	if s.cache.GetJSON(ctx, cache.KeyTransactions, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	txns, err := s.store.ListTransactions(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.cache.SetJSON(ctx, cache.KeyTransactions, txns, cache.TransactionsTTL); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("caching transactions failed")
	}
	c.JSON(http.StatusOK, txns)
}

// fromRequest builds a transaction, taking the suggested category when none is given.
func fromRequest(req transactionRequest) models.Transaction {
	t := models.Transaction{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
	t.Normalize()
	if t.Category == "" && t.Type == models.TypeExpense && categorize.ShouldSuggest(t.Description) {
		t.Category = categorize.Suggest(t.Description).Category
		t.AutoSuggested = true
	}
	return t
}

// addTransaction creates a new transaction
func (s *Server) addTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t := fromRequest(req)
	if err := t.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.store.AddTransaction(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	s.invalidate(c)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t := fromRequest(req)
	t.ID = c.Param("id")
	if err := t.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.store.UpdateTransaction(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	s.invalidate(c)
	c.JSON(http.StatusOK, updated)
}

// deleteTransaction removes a transaction by ID
func (s *Server) deleteTransaction(c *gin.Context) {
	if err := s.store.RemoveTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	s.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// getCategories lists the expense categories the suggester knows
func (s *Server) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, categorize.Categories())
}

func (s *Server) suggestCategory(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sug := categorize.Suggest(req.Description)
	c.JSON(http.StatusOK, suggestResponse{
		Suggest:    categorize.ShouldSuggest(req.Description),
		Category:   sug.Category,
		Confidence: sug.Confidence,
		Reason:     sug.Reason,
	})
}

// getAnalytics returns the overview with optional Redis caching
func (s *Server) getAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	now := s.now()

	var overview Analytics
	if s.cache.GetJSON(ctx, cache.KeyAnalytics, &overview) && overview.currentAt(now) {
		c.JSON(http.StatusOK, overview)
		return
	}

	txns, err := s.store.ListTransactions(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	overview = buildAnalytics(txns, now)

	if err := s.cache.SetJSON(ctx, cache.KeyAnalytics, overview, cache.AnalyticsTTL); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("caching analytics failed")
	}
	c.JSON(http.StatusOK, overview)
}

// buildAnalytics computes the overview for txns as seen at now.
func buildAnalytics(txns []models.Transaction, now time.Time) Analytics {
	return Analytics{
		Month:          now.Format(monthLayout),
		Summary:        analytics.Summarize(txns),
		ByCategory:     analytics.AnalyzeSpendingPatterns(txns),
		Health:         analytics.HealthScore(txns, now),
		Alerts:         analytics.OverspendingAlerts(analytics.CategoryTrends(txns, now)),
		Prediction:     analytics.Predict(txns, now),
		BudgetInsights: analytics.BudgetInsights(txns, analytics.DefaultBudgetLimits),
	}
}

func (s *Server) getMonthly(c *gin.Context) {
	year := s.now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = y
	}

	txns, err := s.store.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics.MonthlyBreakdown(txns, year))
}

func (s *Server) getTrends(c *gin.Context) {
	txns, err := s.store.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics.CategoryTrends(txns, s.now()))
}

func (s *Server) getBudget(c *gin.Context) {
	txns, err := s.store.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics.BudgetProgress(txns, analytics.DefaultBudgetLimits))
}
