package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"student-dashboard-backend/internal/models"
)

const (
	// AlertShare is the share of this month's spending, in percent, above
	// which a category raises an alert.
	AlertShare = 25
	// AlertRise is the month-over-month increase, in percent, that raises
	// an alert for a rising category.
	AlertRise = 20
	MaxAlerts = 3
)

// OverspendingAlerts picks up to MaxAlerts categories from trends, in order,
// that take a large share of spending or are rising quickly.
func OverspendingAlerts(trends []CategoryTrend) []CategoryTrend {
	alerts := make([]CategoryTrend, 0, MaxAlerts)
	for _, t := range trends {
		if len(alerts) == MaxAlerts {
			break
		}
		if t.Percentage > AlertShare || (t.Trend == TrendUp && t.TrendPercent > AlertRise) {
			alerts = append(alerts, t)
		}
	}
	return alerts
}

const (
	expenseBuffer  = 1.05
	categoryGrowth = 1.02
	// activeMonths is how many recent months with spending feed the forecast.
	activeMonths = 3
)

// CategoryForecast is next month's expected spending in one category
type CategoryForecast struct {
	Category string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// Prediction is a simple projection of next month's spending
type Prediction struct {
	PredictedExpenses float64           `json:"predictedAmount"`
	PredictedSavings  float64           `json:"predictedSavings"`
	TopCategory       *CategoryForecast `json:"topCategoryPrediction"`
}

// Predict averages the last three months of now's year that had expenses
// and adds a 5% buffer. It returns nil when no month had expenses.
func Predict(txns []models.Transaction, now time.Time) *Prediction {
	months := MonthlyBreakdown(txns, now.Year())

	var recent []MonthlyTotals
	for _, m := range months {
		if m.Expenses > 0 {
			recent = append(recent, m)
		}
	}
	if len(recent) == 0 {
		return nil
	}
	if len(recent) > activeMonths {
		recent = recent[len(recent)-activeMonths:]
	}

	var sum float64
	for _, m := range recent {
		sum += m.Expenses
	}
	predicted := sum / float64(len(recent)) * expenseBuffer

	p := &Prediction{
		PredictedExpenses: predicted,
		PredictedSavings:  months[now.Month()-1].Income - predicted,
	}
	if trends := CategoryTrends(txns, now); len(trends) > 0 {
		p.TopCategory = &CategoryForecast{Category: trends[0].Category, Amount: trends[0].Amount * categoryGrowth}
	}
	return p
}

// HighestCategorySpend is the all-time category total above which the
// biggest category gets its own insight.
const HighestCategorySpend = 400

const onTrackInsight = "Great job! You're staying within your budget limits."

// BudgetInsights returns rule-based advice over all transactions. There is
// always at least one entry.
func BudgetInsights(txns []models.Transaction, limits map[string]float64) []string {
	var insights []string

	if Summarize(txns).Balance < 0 {
		insights = append(insights, "Your expenses exceed your income. Consider reducing spending in entertainment or food categories.")
	}

	order, sums := expensesByCategory(txns, func(models.Transaction) bool { return true })
	top, topAmount := "", 0.0
	for _, cat := range order {
		if sums[cat] > topAmount {
			top, topAmount = cat, sums[cat]
		}
	}
	if topAmount > HighestCategorySpend {
		insights = append(insights, fmt.Sprintf("You're spending the most on %s (₱%s). Look for ways to optimize this category.",
			top, strconv.FormatFloat(topAmount, 'f', -1, 64)))
	}

	var over []string
	for _, b := range BudgetProgress(txns, limits) {
		if b.Limit > 0 && b.Spent > b.Limit {
			over = append(over, b.Category)
		}
	}
	if len(over) > 0 {
		insights = append(insights, "You're over budget in: "+strings.Join(over, ", "))
	}

	if len(insights) == 0 {
		return []string{onTrackInsight}
	}
	return insights
}
