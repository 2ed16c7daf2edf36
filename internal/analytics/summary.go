package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"student-dashboard-backend/internal/categorize"
	"student-dashboard-backend/internal/models"
)

const monthLayout = "2006-01"

// Summary contains the headline totals for a transaction snapshot
type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
}

// Summarize totals income and expenses, rounded to cents.
func Summarize(txns []models.Transaction) Summary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(decimal.NewFromFloat(t.Amount))
		case models.TypeExpense:
			expenses = expenses.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return Summary{
		TotalIncome:      income.Round(2).InexactFloat64(),
		TotalExpenses:    expenses.Round(2).InexactFloat64(),
		Balance:          income.Sub(expenses).Round(2).InexactFloat64(),
		TransactionCount: len(txns),
	}
}

// MonthlyTotals is one month of the yearly overview
type MonthlyTotals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// MonthlyBreakdown returns twelve entries, January through December of year.
func MonthlyBreakdown(txns []models.Transaction, year int) []MonthlyTotals {
	out := make([]MonthlyTotals, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, t := range txns {
		d := t.ParsedDate()
		if d.IsZero() || d.Year() != year {
			continue
		}
		m := &out[d.Month()-1]
		switch t.Type {
		case models.TypeIncome:
			m.Income += t.Amount
		case models.TypeExpense:
			m.Expenses += t.Amount
		}
	}
	for i := range out {
		out[i].Balance = out[i].Income - out[i].Expenses
	}
	return out
}

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// stableBand is the month-over-month change, in percent, still considered stable.
const stableBand = 5

// CategoryTrend compares a category's spending this month with last month
type CategoryTrend struct {
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Trend        string  `json:"trend"`
	TrendPercent float64 `json:"trendPercent"`
}

// CategoryTrends reports the current month's expenses by category, largest first.
func CategoryTrends(txns []models.Transaction, now time.Time) []CategoryTrend {
	cur := now.Format(monthLayout)
	last := now.AddDate(0, 0, -now.Day()).Format(monthLayout)

	order, current := expensesByCategory(txns, inMonth(cur))
	_, previous := expensesByCategory(txns, inMonth(last))

	var total float64
	for _, cat := range order {
		total += current[cat]
	}

	trends := make([]CategoryTrend, 0, len(order))
	for _, cat := range order {
		amount := current[cat]
		var change float64
		if prev := previous[cat]; prev > 0 {
			change = (amount - prev) / prev * 100
		}
		trend := TrendStable
		switch {
		case math.Abs(change) < stableBand:
		case change > 0:
			trend = TrendUp
		default:
			trend = TrendDown
		}
		trends = append(trends, CategoryTrend{
			Category:     cat,
			Amount:       amount,
			Percentage:   share(amount, total),
			Trend:        trend,
			TrendPercent: math.Abs(change),
		})
	}
	sort.SliceStable(trends, func(i, j int) bool { return trends[i].Amount > trends[j].Amount })
	return trends
}

func inMonth(month string) func(models.Transaction) bool {
	return func(t models.Transaction) bool {
		return len(t.Date) >= len(monthLayout) && t.Date[:len(monthLayout)] == month
	}
}

// Health is the financial health score for the current month
type Health struct {
	Score  int     `json:"score"`
	Status string  `json:"status"`
	Ratio  float64 `json:"expenseToIncomeRatio"`
}

// HealthScore scores the current month's expense-to-income ratio.
func HealthScore(txns []models.Transaction, now time.Time) Health {
	keep := inMonth(now.Format(monthLayout))
	var income, expenses float64
	for _, t := range txns {
		if !keep(t) {
			continue
		}
		switch t.Type {
		case models.TypeIncome:
			income += t.Amount
		case models.TypeExpense:
			expenses += t.Amount
		}
	}

	ratio := 100.0
	if income > 0 {
		ratio = expenses / income * 100
	}

	score := 100
	switch {
	case ratio > 100:
		score -= 30
	case ratio > 80:
		score -= 15
	case ratio > 60:
		score -= 5
	}

	status := "Excellent"
	switch {
	case score < 50:
		status = "Critical"
	case score < 70:
		status = "Warning"
	case score < 85:
		status = "Good"
	}
	return Health{Score: score, Status: status, Ratio: ratio}
}

// DefaultBudgetLimits are the monthly limits per expense category.
var DefaultBudgetLimits = map[string]float64{
	"Food":           600,
	"Transport":      200,
	"Entertainment":  300,
	"Supplies":       150,
	"Healthcare":     100,
	"Clothing":       200,
	categorize.Other: 100,
}

// BudgetStatus is spending against the limit of one category
type BudgetStatus struct {
	Category   string  `json:"category"`
	Spent      float64 `json:"spent"`
	Limit      float64 `json:"limit"`
	Percentage int     `json:"percentage"`
}

// BudgetProgress reports every taxonomy category against limits, in taxonomy order.
func BudgetProgress(txns []models.Transaction, limits map[string]float64) []BudgetStatus {
	_, spent := expensesByCategory(txns, func(models.Transaction) bool { return true })

	cats := categorize.Categories()
	out := make([]BudgetStatus, 0, len(cats))
	for _, cat := range cats {
		st := BudgetStatus{Category: cat, Spent: spent[cat], Limit: limits[cat]}
		if st.Limit > 0 {
			st.Percentage = int(math.Round(st.Spent / st.Limit * 100))
		}
		out = append(out, st)
	}
	return out
}
