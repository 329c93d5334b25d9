package main

import (
	"math/rand"

	"basketDebate/business/simulation"
	"basketDebate/domain"
)

// Policy picks one action per role from the current observations.
type Policy interface {
	Act(obs map[simulation.Role]simulation.Observation) map[simulation.Role]int
}

// randomPolicy draws every role's action uniformly from [0, numActions).
// It is the baseline used when no trained policy is plugged in.
type randomPolicy struct {
	rng        *rand.Rand
	numActions int
}

func newRandomPolicy(seed int64, numActions int) *randomPolicy {
	return &randomPolicy{
		rng:        rand.New(rand.NewSource(seed)),
		numActions: numActions,
	}
}

func (p *randomPolicy) Act(_ map[simulation.Role]simulation.Observation) map[simulation.Role]int {
	actions := make(map[simulation.Role]int, 3)
	for _, role := range simulation.Roles() {
		if p.numActions <= 1 {
			actions[role] = 0
			continue
		}
		actions[role] = p.rng.Intn(p.numActions)
	}
	return actions
}

type episodeSummary struct {
	Steps    int
	Spend    float64
	Rewards  map[simulation.Role]float64
	Products []domain.Product
}

// runEpisode drives env from reset to termination with policy.
func runEpisode(env *simulation.Environment, policy Policy) episodeSummary {
	obs, _ := env.Reset()
	for !env.Done() {
		res := env.Step(policy.Act(obs))
		obs = res.Observations
	}

	return episodeSummary{
		Steps:    env.StepCount(),
		Spend:    env.Spend(),
		Rewards:  env.CumulativeRewards(),
		Products: env.CartProducts(),
	}
}

// cartToBasket folds repeated selections of the same product into one basket
// line. Lines keep first-selection order.
func cartToBasket(products []domain.Product) []domain.BasketItem {
	basket := make([]domain.BasketItem, 0, len(products))
	pos := make(map[int64]int, len(products))

	for _, p := range products {
		if i, ok := pos[p.ID]; ok {
			basket[i].Quantity++
			basket[i].TotalPrice = basket[i].PricePerUnit * basket[i].Quantity
			continue
		}
		pos[p.ID] = len(basket)
		basket = append(basket, domain.NewBasketItemFromProduct(p, 1))
	}

	return basket
}
