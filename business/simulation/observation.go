package simulation

const ObservationSize = 12

// Nominal observation bounds.
const (
	ObservationLow  = 0.0
	ObservationHigh = 2.0
)

const (
	spentRatioCap       = 1.2
	avgPriceRatioCap    = 2.0
	avgPriceBudgetShare = 10.0
)

// Observation is the per-role view of the episode. All roles see the same vector.
type Observation [ObservationSize]float64

func (e *Environment) observe() Observation {
	var (
		o      Observation
		budget = e.constraints.BudgetRub
		spend  = e.state.spend
		cart   = e.cartStats()
		n      = float64(cart.size)
		steps  = float64(e.cfg.MaxSteps)
	)

	// index 0: budget remaining
	// index 1: spent share, capped
	if budget > 0 {
		o[0] = clamp((budget-spend)/budget, 0, 1)
		o[1] = min(spend/budget, spentRatioCap)
	}

	// index 2: cart fill relative to episode length
	// index 4: step progress
	if steps > 0 {
		o[2] = n / steps
		o[4] = float64(e.state.step) / steps
	}

	// index 3: average item price relative to a tenth of the budget
	if cart.size > 0 && budget > 0 {
		o[3] = min((spend/n)/(budget/avgPriceBudgetShare), avgPriceRatioCap)
	}

	// index 5: category diversity
	if cart.size > 1 {
		o[5] = float64(cart.categories) / n
	}

	// index 6,7: tag violations and matches
	if cart.size > 0 {
		o[6] = float64(cart.violations) / n
		if len(e.include) > 0 {
			o[7] = float64(cart.matches) / n
		}
	}

	// index 8-10: precomputed pool shape
	o[8] = e.pool.meanPriceRatio(budget)
	o[9] = e.pool.categoryRatio()
	o[10] = e.pool.cleanFraction

	// index 11: reserved
	return o
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
