package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"student-dashboard-backend/internal/models"
)

func expense(cat string, amount float64, date string) models.Transaction {
	return models.Transaction{Type: models.TypeExpense, Category: cat, Amount: amount, Date: date}
}

func income(cat string, amount float64, date string) models.Transaction {
	return models.Transaction{Type: models.TypeIncome, Category: cat, Amount: amount, Date: date}
}

func TestAnalyzeSpendingPatternsEmpty(t *testing.T) {
	t.Parallel()

	got := AnalyzeSpendingPatterns(nil)
	require.NotNil(t, got)
	require.Empty(t, got)

	got = AnalyzeSpendingPatterns([]models.Transaction{income("Scholarship", 1500, "2025-03-01")})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestAnalyzeSpendingPatternsScenario(t *testing.T) {
	t.Parallel()

	got := AnalyzeSpendingPatterns([]models.Transaction{
		expense("Food", 450, "2025-03-01"),
		expense("Transport", 120, "2025-03-02"),
		income("Scholarship", 1500, "2025-03-03"),
	})
	require.Len(t, got, 2)

	byCat := map[string]SpendingInsight{}
	for _, in := range got {
		byCat[in.Category] = in
	}
	require.InDelta(t, 450, byCat["Food"].Amount, 1e-9)
	require.InDelta(t, 78.947, byCat["Food"].Percentage, 0.01)
	require.True(t, byCat["Food"].IsHighSpending)
	require.InDelta(t, 120, byCat["Transport"].Amount, 1e-9)
	require.InDelta(t, 21.052, byCat["Transport"].Percentage, 0.01)
	require.False(t, byCat["Transport"].IsHighSpending)
}

func TestAnalyzeSpendingPatternsLossless(t *testing.T) {
	t.Parallel()

	txns := []models.Transaction{
		expense("Food", 12.5, "2025-01-01"),
		expense("Food", 7.25, "2025-01-02"),
		expense("Supplies", 3.1, "2025-01-02"),
		income("Allowance", 200, "2025-01-03"),
		expense("Healthcare", 40, "2025-01-04"),
		expense("Custom", 0.15, "2025-01-05"),
	}

	var wantTotal float64
	for _, tx := range txns {
		if tx.Type == models.TypeExpense {
			wantTotal += tx.Amount
		}
	}

	got := AnalyzeSpendingPatterns(txns)
	require.Len(t, got, 4)
	require.Equal(t, "Food", got[0].Category)

	var amount, pct float64
	for _, in := range got {
		amount += in.Amount
		pct += in.Percentage
		require.Equal(t, in.Percentage > HighSpendingThreshold, in.IsHighSpending)
	}
	require.InDelta(t, wantTotal, amount, 1e-9)
	require.InDelta(t, 100, pct, 1e-9)
}

func TestAnalyzeSpendingPatternsZeroTotal(t *testing.T) {
	t.Parallel()

	got := AnalyzeSpendingPatterns([]models.Transaction{expense("Food", 0, "2025-01-01")})
	require.Len(t, got, 1)
	require.Zero(t, got[0].Percentage)
	require.False(t, got[0].IsHighSpending)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]models.Transaction{
		income("Allowance", 0.1, "2025-01-01"),
		income("Allowance", 0.2, "2025-01-01"),
		expense("Food", 0.05, "2025-01-02"),
	})
	require.Equal(t, 0.3, s.TotalIncome)
	require.Equal(t, 0.05, s.TotalExpenses)
	require.Equal(t, 0.25, s.Balance)
	require.Equal(t, 3, s.TransactionCount)
}

func TestMonthlyBreakdown(t *testing.T) {
	t.Parallel()

	got := MonthlyBreakdown([]models.Transaction{
		income("Allowance", 1000, "2025-02-01"),
		expense("Food", 250, "2025-02-14"),
		expense("Food", 99, "2024-02-14"),
		expense("Food", 1, "not-a-date"),
	}, 2025)
	require.Len(t, got, 12)
	require.Equal(t, "Jan", got[0].Month)
	require.Equal(t, "Feb", got[1].Month)
	require.Equal(t, 1000.0, got[1].Income)
	require.Equal(t, 250.0, got[1].Expenses)
	require.Equal(t, 750.0, got[1].Balance)
	require.Zero(t, got[0].Expenses)
}

func TestCategoryTrends(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	got := CategoryTrends([]models.Transaction{
		expense("Food", 100, "2025-02-10"),
		expense("Food", 150, "2025-03-10"),
		expense("Transport", 50, "2025-02-10"),
		expense("Transport", 20, "2025-03-11"),
		expense("Supplies", 51, "2025-02-01"),
		expense("Supplies", 52, "2025-03-01"),
		expense("Clothing", 30, "2025-03-02"),
	}, now)

	require.Len(t, got, 4)
	require.Equal(t, "Food", got[0].Category)
	require.Equal(t, TrendUp, got[0].Trend)
	require.InDelta(t, 50, got[0].TrendPercent, 1e-9)

	byCat := map[string]CategoryTrend{}
	for _, tr := range got {
		byCat[tr.Category] = tr
	}
	require.Equal(t, TrendDown, byCat["Transport"].Trend)
	require.InDelta(t, 60, byCat["Transport"].TrendPercent, 1e-9)
	require.Equal(t, TrendStable, byCat["Supplies"].Trend)
	require.Equal(t, TrendStable, byCat["Clothing"].Trend)
	require.Zero(t, byCat["Clothing"].TrendPercent)
}

func TestHealthScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		txns   []models.Transaction
		score  int
		status string
	}{
		{"no income", []models.Transaction{expense("Food", 10, "2025-05-01")}, 85, "Excellent"},
		{"under sixty", []models.Transaction{income("A", 100, "2025-05-01"), expense("Food", 50, "2025-05-02")}, 100, "Excellent"},
		{"over sixty", []models.Transaction{income("A", 100, "2025-05-01"), expense("Food", 70, "2025-05-02")}, 95, "Excellent"},
		{"over eighty", []models.Transaction{income("A", 100, "2025-05-01"), expense("Food", 90, "2025-05-02")}, 85, "Excellent"},
		{"overspent", []models.Transaction{income("A", 100, "2025-05-01"), expense("Food", 150, "2025-05-02")}, 70, "Good"},
		{"other months ignored", []models.Transaction{income("A", 100, "2025-05-01"), expense("Food", 500, "2025-04-02")}, 100, "Excellent"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := HealthScore(tc.txns, now)
			require.Equal(t, tc.score, h.Score)
			require.Equal(t, tc.status, h.Status)
		})
	}
}

func TestBudgetProgress(t *testing.T) {
	t.Parallel()

	got := BudgetProgress([]models.Transaction{
		expense("Food", 300, "2025-01-01"),
		expense("Transport", 250, "2025-01-01"),
		income("Allowance", 5000, "2025-01-01"),
	}, DefaultBudgetLimits)

	require.Len(t, got, 7)
	require.Equal(t, BudgetStatus{Category: "Food", Spent: 300, Limit: 600, Percentage: 50}, got[0])
	require.Equal(t, 125, got[1].Percentage)
	require.Equal(t, "Other", got[6].Category)
	require.Zero(t, got[6].Spent)

	noLimits := BudgetProgress([]models.Transaction{expense("Food", 10, "2025-01-01")}, nil)
	require.Zero(t, noLimits[0].Percentage)
}
