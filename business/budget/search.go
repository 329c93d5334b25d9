package budget

import (
	"context"
	"fmt"

	"basketDebate/domain"
)

// findCheaperAlternative looks for the product most similar to item among
// priced, embedded catalog products cheaper than item's unit price by at least
// minDiscount. It returns nil when nothing qualifies.
func findCheaperAlternative(
	ctx context.Context,
	finder domain.CandidateFinder,
	item domain.BasketItem,
	minDiscount float64,
	limit int,
) (*domain.Product, error) {
	maxPrice := item.PricePerUnit * (1 - minDiscount)
	if maxPrice <= 0 {
		return nil, nil
	}

	filter := domain.CandidateFilter{
		PriceBelow:       &maxPrice,
		PricedOnly:       true,
		RequireEmbedding: true,
	}
	// only the first label narrows; no label means no narrowing
	if len(item.MealComponents) > 0 {
		filter.MealComponent = item.MealComponents[0]
	}

	candidates, err := finder.FindCandidates(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("find candidates under %.2f: %w", maxPrice, err)
	}

	return mostSimilar(item, candidates), nil
}

// mostSimilar picks the candidate with the highest cosine similarity to item,
// ignoring item itself and pairs whose similarity is not finite. Ties keep the
// earlier candidate.
func mostSimilar(item domain.BasketItem, candidates []domain.Product) *domain.Product {
	var (
		best    *domain.Product
		bestSim float64
	)

	for i := range candidates {
		c := &candidates[i]
		if c.ID == item.ID {
			continue
		}

		sim := cosineSimilarity(item.Embedding, c.Embedding)
		if !isFinite(sim) {
			continue
		}

		if best == nil || sim > bestSim {
			best = c
			bestSim = sim
		}
	}

	return best
}
