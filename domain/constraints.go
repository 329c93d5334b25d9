package domain

// Constraints is the structured form of a shopping request, as produced by the
// constraint resolver. It does not change during an episode or an optimize call.
type Constraints struct {
	BudgetRub   float64  `json:"budget_rub" validate:"gt=0"`
	ExcludeTags []string `json:"exclude_tags"`
	IncludeTags []string `json:"include_tags"`
	MealTypes   []string `json:"meal_types" validate:"dive,oneof=breakfast lunch dinner snack"`
	People      int      `json:"people" validate:"gte=1"`
}

// TagSet turns a tag list into a lookup set.
func TagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}
