// Package analytics aggregates transaction snapshots into the figures shown
// on the dashboard. Every function is pure and works on the slice it is given.
package analytics

import "student-dashboard-backend/internal/models"

// HighSpendingThreshold is the share of total expenses, in percent, above
// which a category is flagged.
const HighSpendingThreshold = 30

// SpendingInsight is the aggregate for one expense category
type SpendingInsight struct {
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Percentage     float64 `json:"percentage"`
	IsHighSpending bool    `json:"isHighSpending"`
}

// AnalyzeSpendingPatterns sums expense amounts per category and reports each
// category's share of the total. Insights are returned in first-seen order.
func AnalyzeSpendingPatterns(txns []models.Transaction) []SpendingInsight {
	order, sums := expensesByCategory(txns, func(models.Transaction) bool { return true })

	var total float64
	for _, cat := range order {
		total += sums[cat]
	}

	insights := make([]SpendingInsight, 0, len(order))
	for _, cat := range order {
		pct := share(sums[cat], total)
		insights = append(insights, SpendingInsight{
			Category:       cat,
			Amount:         sums[cat],
			Percentage:     pct,
			IsHighSpending: pct > HighSpendingThreshold,
		})
	}
	return insights
}

// expensesByCategory groups expense amounts that pass keep.
func expensesByCategory(txns []models.Transaction, keep func(models.Transaction) bool) ([]string, map[string]float64) {
	var order []string
	sums := make(map[string]float64)
	for _, t := range txns {
		if t.Type != models.TypeExpense || !keep(t) {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
	}
	return order, sums
}

func share(amount, total float64) float64 {
	if total > 0 {
		return amount / total * 100
	}
	return 0
}
