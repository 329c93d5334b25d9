package budget

import (
	"context"
	"fmt"
	"sort"

	"basketDebate/domain"
	"basketDebate/pkg/logger"
	"basketDebate/pkg/metrics"
)

// Catalog hands out a single read session over the product store.
// The session must be released when fn returns.
type Catalog interface {
	WithSession(ctx context.Context, fn func(domain.CandidateFinder) error) error
}

const (
	defaultMinDiscount = 0.3

	// 0 leaves the candidate query unbounded
	defaultCandidateLimit = 0
)

type Config struct {
	MinDiscount    float64
	CandidateLimit int
}

func DefaultConfig() Config {
	return Config{
		MinDiscount:    defaultMinDiscount,
		CandidateLimit: defaultCandidateLimit,
	}
}

// Request is one optimize call. A nil BudgetRub means no budget and the basket
// is returned as is. A nil or out of range MinDiscount uses the configured one.
type Request struct {
	Basket      []domain.BasketItem
	BudgetRub   *float64
	MinDiscount *float64
}

// Optimizer repairs over-budget baskets by swapping items for cheaper,
// embedding-similar catalog products.
type Optimizer struct {
	catalog Catalog
	cfg     Config
}

func NewOptimizer(catalog Catalog, cfg Config) *Optimizer {
	if !validDiscount(cfg.MinDiscount) {
		cfg.MinDiscount = defaultMinDiscount
	}
	return &Optimizer{catalog: catalog, cfg: cfg}
}

// a discount outside [0, 1) would let a pricier or free product qualify
func validDiscount(d float64) bool {
	return d >= 0 && d < 1
}

const (
	outcomeInvalid      = "invalid"
	outcomeEmpty        = "empty"
	outcomeWithinBudget = "within_budget"
	outcomeOptimized    = "optimized"
	outcomeOverBudget   = "over_budget"
	outcomeCatalogError = "catalog_error"
)

// Optimize never fails: problems are reported on the result.
//
// Items are visited once, most expensive line first, in an order fixed before
// any substitution. The walk stops as soon as the running total fits the budget.
// Every replacement keeps the original quantity.
func (o *Optimizer) Optimize(ctx context.Context, req Request) domain.OptimizeResult {
	tid := TraceIDFromContext(ctx)

	report := ValidateBasket(req.Basket)
	if !report.Valid {
		metrics.OptimizerRuns.WithLabelValues(outcomeInvalid).Inc()
		logger.Warn("budget_optimize_invalid",
			"trace_id", tid,
			"items", len(req.Basket),
			"errors", len(report.Errors),
		)
		return domain.OptimizeResult{
			Basket:       []domain.BasketItem{},
			Replacements: []domain.Replacement{},
			WithinBudget: false,
			Errors:       report.Errors,
			Warnings:     report.Warnings,
			Message:      "invalid basket",
		}
	}

	if len(req.Basket) == 0 {
		metrics.OptimizerRuns.WithLabelValues(outcomeEmpty).Inc()
		return domain.OptimizeResult{
			Basket:       []domain.BasketItem{},
			Replacements: []domain.Replacement{},
			WithinBudget: true,
			Message:      "empty basket",
		}
	}

	basket := make([]domain.BasketItem, len(req.Basket))
	copy(basket, req.Basket)

	original := CalculateTotal(basket)
	if req.BudgetRub == nil || original <= *req.BudgetRub {
		metrics.OptimizerRuns.WithLabelValues(outcomeWithinBudget).Inc()
		return domain.OptimizeResult{
			Basket:       basket,
			TotalPrice:   original,
			Replacements: []domain.Replacement{},
			WithinBudget: true,
			Warnings:     report.Warnings,
			Message:      "within budget",
		}
	}
	budget := *req.BudgetRub

	minDiscount := o.cfg.MinDiscount
	if req.MinDiscount != nil {
		if validDiscount(*req.MinDiscount) {
			minDiscount = *req.MinDiscount
		} else {
			logger.Warn("budget_discount_out_of_range",
				"trace_id", tid,
				"requested", *req.MinDiscount,
				"using", minDiscount,
			)
		}
	}

	logger.Debug("budget_optimize_start",
		"trace_id", tid,
		"items", len(basket),
		"total", original,
		"budget", budget,
		"overspend", round2(original-budget),
		"min_discount", minDiscount,
	)

	order := make([]int, len(basket))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return basket[order[a]].TotalPrice > basket[order[b]].TotalPrice
	})

	var (
		replacements = []domain.Replacement{}
		saved        float64
	)

	err := o.catalog.WithSession(ctx, func(finder domain.CandidateFinder) error {
		for _, idx := range order {
			if CalculateTotal(basket) <= budget {
				break
			}

			item := basket[idx]
			alt, err := findCheaperAlternative(ctx, finder, item, minDiscount, o.cfg.CandidateLimit)
			if err != nil {
				logger.Warn("budget_candidate_query_failed",
					"trace_id", tid,
					"item_id", item.ID,
					"err", err,
				)
				continue
			}
			if alt == nil {
				logger.Debug("budget_no_alternative",
					"trace_id", tid,
					"item_id", item.ID,
					"unit_price", item.PricePerUnit,
				)
				continue
			}

			next := domain.NewBasketItemFromProduct(*alt, item.Quantity)
			delta := item.TotalPrice - next.TotalPrice
			basket[idx] = next
			saved += delta

			replacements = append(replacements, domain.Replacement{
				From:     item.Name,
				To:       next.Name,
				Saved:    round2(delta),
				OldPrice: round2(item.TotalPrice),
				NewPrice: round2(next.TotalPrice),
				Quantity: next.Quantity,
			})

			logger.Debug("budget_replacement",
				"trace_id", tid,
				"from_id", item.ID,
				"to_id", next.ID,
				"old_price", item.TotalPrice,
				"new_price", next.TotalPrice,
			)
		}
		return nil
	})
	if err != nil {
		metrics.OptimizerRuns.WithLabelValues(outcomeCatalogError).Inc()
		logger.Error("budget_catalog_session_failed", "trace_id", tid, "err", err)

		unchanged := make([]domain.BasketItem, len(req.Basket))
		copy(unchanged, req.Basket)
		return domain.OptimizeResult{
			Basket:       unchanged,
			TotalPrice:   original,
			Replacements: []domain.Replacement{},
			WithinBudget: false,
			Errors:       []string{fmt.Sprintf("catalog session: %v", err)},
			Warnings:     report.Warnings,
			Message:      "catalog unavailable",
		}
	}

	final := CalculateTotal(basket)
	within := final <= budget

	res := domain.OptimizeResult{
		Basket:       basket,
		TotalPrice:   final,
		Saved:        round2(saved),
		Replacements: replacements,
		WithinBudget: within,
		Optimized:    len(replacements) > 0,
		Warnings:     report.Warnings,
	}

	switch {
	case len(replacements) > 0:
		res.Message = fmt.Sprintf("replaced %d items, saved %.2f", len(replacements), res.Saved)
	default:
		res.Message = "no cheaper alternatives found"
	}

	outcome := outcomeOptimized
	if !within {
		outcome = outcomeOverBudget
	}
	metrics.OptimizerRuns.WithLabelValues(outcome).Inc()
	if len(replacements) > 0 {
		metrics.OptimizerReplacements.Add(float64(len(replacements)))
		metrics.OptimizerSaved.Observe(res.Saved)
	}

	logger.Info("budget_optimize_done",
		"trace_id", tid,
		"total_before", original,
		"total_after", final,
		"budget", budget,
		"replacements", len(replacements),
		"within_budget", within,
	)

	return res
}
