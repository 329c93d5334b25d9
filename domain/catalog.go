package domain

import "context"

// CandidateFilter narrows a catalog query. Nil bounds and empty lists are ignored.
type CandidateFilter struct {
	MinPrice   *float64 // price_per_unit >= MinPrice
	MaxPrice   *float64 // price_per_unit <= MaxPrice
	PriceBelow *float64 // price_per_unit < PriceBelow

	// MealComponent is matched as a substring of the stored label list.
	MealComponent string

	ExcludeTags []string
	IncludeTags []string

	PricedOnly            bool
	RequireEmbedding      bool
	RequireMealComponents bool

	// Shuffle returns rows in random order instead of by id.
	Shuffle bool
}

// CandidateFinder runs filtered catalog queries. An empty result is not an error.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, filter CandidateFilter, limit int) ([]Product, error)
}
