package simulation

import (
	"math"
	"testing"

	"basketDebate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observationCatalog() []domain.Product {
	return PadProducts([]domain.Product{
		{ID: 1, Category: "dairy", PricePerUnit: 100, Tags: []string{"vegan"}},
		{ID: 2, Category: "bakery", PricePerUnit: 200, Tags: []string{"gluten"}},
		{ID: 3, Category: "dairy", PricePerUnit: 300, Tags: []string{"vegan", "gluten"}},
		{ID: 4, Category: "meat", PricePerUnit: 400, Tags: []string{"pork"}},
	}, 6)
}

func TestObservationAfterReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 5
	constraints := domain.Constraints{BudgetRub: 1000, ExcludeTags: []string{"pork"}, People: 1}

	env := New(observationCatalog(), constraints, cfg)
	obs, _ := env.Reset()

	o := obs[RoleCompat]
	assert.Equal(t, obs[RoleBudget], o)
	assert.Equal(t, 1.0, o[0])
	for _, i := range []int{1, 2, 3, 4, 5, 6, 7, 11} {
		assert.Equal(t, 0.0, o[i], "index %d", i)
	}

	// pool: mean 250 vs budget/10 = 100, three categories over four priced, one pork item
	assert.InDelta(t, 2.0, o[8], 1e-9)
	assert.InDelta(t, 0.75, o[9], 1e-9)
	assert.InDelta(t, 0.75, o[10], 1e-9)
}

func TestObservationTracksCart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 5
	constraints := domain.Constraints{
		BudgetRub:   1000,
		ExcludeTags: []string{"gluten"},
		IncludeTags: []string{"vegan"},
		People:      1,
	}

	env := New(observationCatalog(), constraints, cfg)
	env.Reset()

	res := env.Step(map[Role]int{RoleBudget: 1, RoleCompat: 2, RoleProfile: 3})
	o := res.Observations[RoleProfile]

	assert.InDelta(t, 0.4, o[0], 1e-9)
	assert.InDelta(t, 0.6, o[1], 1e-9)
	assert.InDelta(t, 3.0/5, o[2], 1e-9)
	assert.InDelta(t, 2.0, o[3], 1e-9)
	assert.InDelta(t, 1.0/5, o[4], 1e-9)
	assert.InDelta(t, 2.0/3, o[5], 1e-9)
	assert.InDelta(t, 2.0/3, o[6], 1e-9)
	assert.InDelta(t, 2.0/3, o[7], 1e-9)
	assert.Equal(t, 0.0, o[11])
}

func TestObservationSingleItemHasNoDiversity(t *testing.T) {
	env := New(observationCatalog(), domain.Constraints{BudgetRub: 1000, People: 1}, DefaultConfig())
	env.Reset()

	res := env.Step(map[Role]int{RoleBudget: 1})
	o := res.Observations[RoleBudget]

	assert.Equal(t, 0.0, o[5])
	assert.InDelta(t, 1.0, o[3], 1e-9)
	// no include tags configured
	assert.Equal(t, 0.0, o[7])
}

func TestObservationZeroBudget(t *testing.T) {
	env := New(observationCatalog(), domain.Constraints{BudgetRub: 0, People: 1}, DefaultConfig())
	obs, _ := env.Reset()

	res := env.Step(map[Role]int{RoleBudget: 1, RoleCompat: 2})
	require.Empty(t, env.Cart())

	for _, o := range []Observation{obs[RoleBudget], res.Observations[RoleBudget]} {
		for i, v := range o {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d", i)
		}
		assert.Equal(t, 0.0, o[0])
		assert.Equal(t, 0.0, o[1])
		assert.Equal(t, 0.0, o[3])
		assert.Equal(t, 0.0, o[8])
	}

	for _, r := range res.Rewards {
		assert.False(t, math.IsNaN(r))
	}
}

func TestObservationEmptyPool(t *testing.T) {
	env := New(PadProducts(nil, 4), domain.Constraints{BudgetRub: 500, People: 1}, DefaultConfig())
	obs, _ := env.Reset()

	o := obs[RoleBudget]
	assert.Equal(t, 0.0, o[8])
	assert.Equal(t, 0.0, o[9])
	assert.Equal(t, 0.0, o[10])
}

func TestObservationWithinNominalBounds(t *testing.T) {
	env := New(observationCatalog(), domain.Constraints{BudgetRub: 300, People: 1}, DefaultConfig())
	env.Reset()

	for !env.Done() {
		res := env.Step(map[Role]int{RoleBudget: 4, RoleCompat: 1, RoleProfile: 2})
		for i, v := range res.Observations[RoleBudget] {
			assert.GreaterOrEqual(t, v, ObservationLow, "index %d", i)
			assert.LessOrEqual(t, v, ObservationHigh, "index %d", i)
		}
	}
}
