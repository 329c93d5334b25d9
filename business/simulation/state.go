package simulation

// Role is one of the reward-shaped decision makers acting every step.
type Role string

const (
	RoleBudget  Role = "budget_agent"
	RoleCompat  Role = "compat_agent"
	RoleProfile Role = "profile_agent"
)

// roleOrder is the order in which a joint action is applied within one step.
// Earlier roles consume budget headroom first.
var roleOrder = [...]Role{RoleBudget, RoleCompat, RoleProfile}

// Roles returns all roles in processing order.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder[:])
	return out
}

// basketState is the mutable part of an episode.
type basketState struct {
	cart        []int // indexes into the catalog snapshot
	spend       float64
	step        int
	lastActions map[Role]int
	cumulative  map[Role]float64
}

func newBasketState() *basketState {
	st := &basketState{
		cart:        make([]int, 0),
		lastActions: make(map[Role]int, len(roleOrder)),
		cumulative:  make(map[Role]float64, len(roleOrder)),
	}
	for _, role := range roleOrder {
		st.cumulative[role] = 0
	}
	return st
}

// cartStats are the per-step derivations shared by rewards and observations.
type cartStats struct {
	size       int
	categories int
	violations int // items carrying an excluded tag
	matches    int // items carrying an included tag
	counts     map[int]int
}

func (e *Environment) cartStats() cartStats {
	st := cartStats{
		size:   len(e.state.cart),
		counts: make(map[int]int, len(e.state.cart)),
	}

	cats := make(map[string]struct{})
	for _, idx := range e.state.cart {
		p := e.products[idx]
		cats[p.Category] = struct{}{}
		st.counts[idx]++
		if p.HasAnyTag(e.exclude) {
			st.violations++
		}
		if p.HasAnyTag(e.include) {
			st.matches++
		}
	}
	st.categories = len(cats)

	return st
}
