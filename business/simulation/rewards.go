package simulation

import "math"

// budgetReward scores closeness of spend to the budget plus a fullness bonus.
func (cfg Config) budgetReward(spend, budget float64, size int) float64 {
	var r float64

	if budget > 0 {
		r -= cfg.DeviationWeight * math.Abs(spend-budget) / budget

		ratio := spend / budget
		switch {
		case ratio >= cfg.TightBandLow && ratio <= cfg.TightBandHigh:
			r += cfg.TightBandBonus
		case ratio >= cfg.LooseBandLow && ratio <= cfg.LooseBandHigh:
			r += cfg.LooseBandBonus
		}
	}

	if cfg.FullnessDivisor > 0 {
		r += min(float64(size)/cfg.FullnessDivisor, cfg.FullnessCap)
	}

	return r
}

// sizeBonus is the shared small bonus for a non-empty cart.
func (cfg Config) sizeBonus(size int) float64 {
	if size == 0 || cfg.SizeDivisor <= 0 {
		return 0
	}
	return min(float64(size)/cfg.SizeDivisor, cfg.SizeCap)
}

// compatReward favors category diversity and punishes monotony and duplicates.
func (cfg Config) compatReward(cart cartStats) float64 {
	r := cfg.sizeBonus(cart.size)

	if cart.size > 1 {
		r += cfg.DiversityWeight * float64(cart.categories) / float64(cart.size)
		if cart.categories == 1 && cart.size >= cfg.MonotonyMinItems {
			r -= cfg.MonotonyPenalty
		}
	}

	for _, c := range cart.counts {
		if c > cfg.DuplicateAllowance {
			r -= cfg.DuplicatePenalty * float64(c-cfg.DuplicateAllowance)
		}
	}

	return r
}

// profileReward follows the tag preferences of the request.
func (cfg Config) profileReward(cart cartStats, hasInclude bool) float64 {
	r := cfg.sizeBonus(cart.size)
	r -= cfg.ExcludedTagPenalty * float64(cart.violations)
	if hasInclude {
		r += cfg.IncludedTagBonus * float64(cart.matches)
	}
	return r
}

// shapeRewards computes the unclamped per-role reward of the step just applied.
func (e *Environment) shapeRewards(actions, prev map[Role]int, terminal bool) map[Role]float64 {
	cart := e.cartStats()
	cfg := e.cfg

	rewards := map[Role]float64{
		RoleBudget:  cfg.budgetReward(e.state.spend, e.constraints.BudgetRub, cart.size),
		RoleCompat:  cfg.compatReward(cart),
		RoleProfile: cfg.profileReward(cart, len(e.include) > 0),
	}

	if colluded(actions) {
		for _, role := range roleOrder {
			rewards[role] -= cfg.CollusionPenalty
		}
	}

	for _, role := range roleOrder {
		if a := actions[role]; a != 0 && a == prev[role] {
			rewards[role] -= cfg.RepeatPenalty
		}
	}

	if terminal && cart.size >= cfg.EndMinItems && cart.categories < cfg.EndMinCategories {
		for _, role := range roleOrder {
			rewards[role] -= cfg.EndPenalty
		}
	}

	return rewards
}

// colluded reports whether every role picked the same non-skip action.
func colluded(actions map[Role]int) bool {
	first := actions[roleOrder[0]]
	if first == 0 {
		return false
	}
	for _, role := range roleOrder[1:] {
		if actions[role] != first {
			return false
		}
	}
	return true
}
