package simulation

import (
	"basketDebate/domain"
	"basketDebate/pkg/logger"
	"basketDebate/pkg/metrics"
)

// StepInfo is the per-role diagnostic record returned by Step.
type StepInfo struct {
	CartSum          float64 `json:"cart_sum"`
	CartSize         int     `json:"cart_size"`
	CumulativeReward float64 `json:"cumulative_reward"`
}

// StepResult is the joint outcome of one step.
type StepResult struct {
	Observations map[Role]Observation
	Rewards      map[Role]float64
	Terminated   map[Role]bool
	Truncated    map[Role]bool
	Info         map[Role]StepInfo
}

// Environment is an episodic basket building simulation over a fixed catalog
// snapshot. It is not safe for concurrent use; run one Environment per episode
// stream.
type Environment struct {
	products    []domain.Product
	constraints domain.Constraints
	cfg         Config

	exclude map[string]struct{}
	include map[string]struct{}
	pool    poolStats

	state *basketState
}

// New builds an environment over products, which should already be padded to
// the action space size (see PadProducts). The slice is copied.
//
// Non-positive MaxSteps, AdmissionSlack and RewardClip take their defaults.
// Other zero weights are kept and switch their reward term off.
func New(products []domain.Product, constraints domain.Constraints, cfg Config) *Environment {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = defaultMaxSteps
	}
	if cfg.AdmissionSlack <= 0 {
		cfg.AdmissionSlack = defaultAdmissionSlack
	}
	if cfg.RewardClip <= 0 {
		cfg.RewardClip = defaultRewardClip
	}

	snapshot := make([]domain.Product, len(products))
	copy(snapshot, products)

	exclude := domain.TagSet(constraints.ExcludeTags)

	return &Environment{
		products:    snapshot,
		constraints: constraints,
		cfg:         cfg,
		exclude:     exclude,
		include:     domain.TagSet(constraints.IncludeTags),
		pool:        computePool(snapshot, exclude),
		state:       newBasketState(),
	}
}

// NumActions is the per-role action space size: skip plus one per product slot.
func (e *Environment) NumActions() int {
	return len(e.products) + 1
}

func (e *Environment) MaxSteps() int {
	return e.cfg.MaxSteps
}

func (e *Environment) Constraints() domain.Constraints {
	return e.constraints
}

// Reset starts a new episode. The environment itself is deterministic; any
// randomness lives in the policy driving it.
func (e *Environment) Reset() (map[Role]Observation, map[Role]domain.Constraints) {
	e.state = newBasketState()

	obs := e.observe()
	observations := make(map[Role]Observation, len(roleOrder))
	infos := make(map[Role]domain.Constraints, len(roleOrder))
	for _, role := range roleOrder {
		observations[role] = obs
		infos[role] = e.constraints
	}

	logger.Debug("basket_episode_reset",
		"products", len(e.products),
		"priced_products", e.pool.pricedCount,
		"budget", e.constraints.BudgetRub,
		"max_steps", e.cfg.MaxSteps,
	)

	return observations, infos
}

// Step applies a joint action. Action 0 skips, action i selects product i-1.
// Roles missing from actions skip. Actions outside [0, NumActions()) are a
// caller error and are not checked.
//
// Roles are applied in Roles() order and each admitted selection updates the
// running spend before the next role is considered.
func (e *Environment) Step(actions map[Role]int) StepResult {
	limit := e.constraints.BudgetRub * e.cfg.AdmissionSlack

	for _, role := range roleOrder {
		a := actions[role]
		if a <= 0 {
			continue
		}

		idx := a - 1
		p := e.products[idx]

		switch {
		case p.IsDummy():
			metrics.SelectionsRejected.WithLabelValues(string(role), "dummy").Inc()
		case e.state.spend+p.PricePerUnit > limit:
			metrics.SelectionsRejected.WithLabelValues(string(role), "budget").Inc()
		default:
			e.state.cart = append(e.state.cart, idx)
			e.state.spend += p.PricePerUnit
		}
	}

	e.state.step++
	terminal := e.state.step >= e.cfg.MaxSteps

	raw := e.shapeRewards(actions, e.state.lastActions, terminal)

	last := make(map[Role]int, len(roleOrder))
	for _, role := range roleOrder {
		last[role] = actions[role]
	}
	e.state.lastActions = last

	res := StepResult{
		Observations: make(map[Role]Observation, len(roleOrder)),
		Rewards:      make(map[Role]float64, len(roleOrder)),
		Terminated:   make(map[Role]bool, len(roleOrder)),
		Truncated:    make(map[Role]bool, len(roleOrder)),
		Info:         make(map[Role]StepInfo, len(roleOrder)),
	}

	obs := e.observe()
	for _, role := range roleOrder {
		r := clamp(raw[role], -e.cfg.RewardClip, e.cfg.RewardClip)
		e.state.cumulative[role] += r

		res.Observations[role] = obs
		res.Rewards[role] = r
		res.Terminated[role] = terminal
		res.Truncated[role] = false
		res.Info[role] = StepInfo{
			CartSum:          e.state.spend,
			CartSize:         len(e.state.cart),
			CumulativeReward: e.state.cumulative[role],
		}
	}

	if e.state.step == e.cfg.MaxSteps {
		e.recordEpisodeEnd()
	}

	return res
}

func (e *Environment) recordEpisodeEnd() {
	metrics.EpisodesTotal.Inc()
	for _, role := range roleOrder {
		metrics.EpisodeReward.WithLabelValues(string(role)).Observe(e.state.cumulative[role])
	}

	logger.Debug("basket_episode_end",
		"steps", e.state.step,
		"cart_size", len(e.state.cart),
		"spend", e.state.spend,
		"budget", e.constraints.BudgetRub,
		"reward_budget", e.state.cumulative[RoleBudget],
		"reward_compat", e.state.cumulative[RoleCompat],
		"reward_profile", e.state.cumulative[RoleProfile],
	)
}

// Done reports whether the current episode has reached its last step.
func (e *Environment) Done() bool {
	return e.state.step >= e.cfg.MaxSteps
}

func (e *Environment) StepCount() int {
	return e.state.step
}

func (e *Environment) Spend() float64 {
	return e.state.spend
}

// Cart returns a copy of the selected product indexes in selection order.
func (e *Environment) Cart() []int {
	out := make([]int, len(e.state.cart))
	copy(out, e.state.cart)
	return out
}

// CartProducts resolves the cart against the catalog snapshot.
func (e *Environment) CartProducts() []domain.Product {
	out := make([]domain.Product, 0, len(e.state.cart))
	for _, idx := range e.state.cart {
		out = append(out, e.products[idx])
	}
	return out
}

// CumulativeRewards returns the running clamped reward per role.
func (e *Environment) CumulativeRewards() map[Role]float64 {
	out := make(map[Role]float64, len(e.state.cumulative))
	for role, v := range e.state.cumulative {
		out[role] = v
	}
	return out
}
