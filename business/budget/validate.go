package budget

import (
	"fmt"

	"basketDebate/domain"
	"basketDebate/pkg/embedding"
)

// ValidateBasket checks every item before optimization. Each failing item
// contributes exactly one error; a non-positive quantity is only a warning.
func ValidateBasket(basket []domain.BasketItem) domain.ValidationReport {
	report := domain.ValidationReport{
		Errors:   []string{},
		Warnings: []string{},
	}

	for i, it := range basket {
		name := itemLabel(it, i)

		if err := checkEmbedding(it.Embedding); err != "" {
			report.Errors = append(report.Errors, fmt.Sprintf("item %q: %s", name, err))
			continue
		}

		if it.PricePerUnit <= 0 && it.TotalPrice <= 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("item %q: invalid price (unit %.2f, total %.2f)", name, it.PricePerUnit, it.TotalPrice))
		}

		if it.Quantity <= 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("item %q: quantity %v should be positive", name, it.Quantity))
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func checkEmbedding(emb []float32) string {
	switch {
	case emb == nil:
		return "missing embedding"
	case len(emb) == 0:
		return "empty embedding"
	case !embedding.IsFinite(emb):
		return "embedding contains NaN/Inf"
	}
	return ""
}

func itemLabel(it domain.BasketItem, i int) string {
	if it.Name != "" {
		return it.Name
	}
	return fmt.Sprintf("item_%d", i)
}
