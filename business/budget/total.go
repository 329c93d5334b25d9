package budget

import "basketDebate/domain"

// CalculateTotal sums the line totals of a normalized basket, rounded to kopecks.
func CalculateTotal(basket []domain.BasketItem) float64 {
	var total float64
	for _, it := range basket {
		total += it.TotalPrice
	}
	return round2(total)
}

// CheckBudget reports whether basket fits into budget without optimizing it.
func CheckBudget(basket []domain.BasketItem, budget float64) domain.BudgetCheck {
	total := CalculateTotal(basket)
	return domain.BudgetCheck{
		Total:     total,
		Budget:    budget,
		Fits:      total <= budget,
		Overspend: round2(max(0, total-budget)),
	}
}
