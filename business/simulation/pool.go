package simulation

import "basketDebate/domain"

// poolStats summarizes the priced part of the catalog snapshot. It is computed
// once per environment and exposed in every observation.
type poolStats struct {
	pricedCount   int
	meanPrice     float64
	categoryCount int
	cleanFraction float64 // share of priced products without excluded tags
}

func computePool(products []domain.Product, exclude map[string]struct{}) poolStats {
	var (
		st    poolStats
		sum   float64
		clean int
	)
	cats := make(map[string]struct{})

	for _, p := range products {
		if p.IsDummy() {
			continue
		}
		st.pricedCount++
		sum += p.PricePerUnit
		cats[p.Category] = struct{}{}
		if !p.HasAnyTag(exclude) {
			clean++
		}
	}

	if st.pricedCount == 0 {
		return st
	}

	st.meanPrice = sum / float64(st.pricedCount)
	st.categoryCount = len(cats)
	st.cleanFraction = float64(clean) / float64(st.pricedCount)

	return st
}

// meanPriceRatio normalizes the pool mean price like the cart average price.
func (st poolStats) meanPriceRatio(budget float64) float64 {
	if budget <= 0 || st.pricedCount == 0 {
		return 0
	}
	return min(st.meanPrice/(budget/avgPriceBudgetShare), avgPriceRatioCap)
}

// categoryRatio normalizes distinct categories like the cart diversity ratio.
func (st poolStats) categoryRatio() float64 {
	if st.pricedCount == 0 {
		return 0
	}
	return float64(st.categoryCount) / float64(st.pricedCount)
}
