package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"basketDebate/business/budget"
	"basketDebate/domain"
	"basketDebate/pkg/logger"
)

// loadBasket reads a JSON array of basket lines in any of the accepted price
// shapes and normalizes it.
func loadBasket(path string) ([]domain.BasketItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read basket: %w", err)
	}

	var items []domain.RawBasketItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse basket: %w", err)
	}

	return domain.NormalizeBasket(items), nil
}

// optimizeBasket fills missing embeddings from the catalog and repairs the
// basket against budgetRub.
func optimizeBasket(
	ctx context.Context,
	cat episodeCatalog,
	opt basketOptimizer,
	basket []domain.BasketItem,
	budgetRub float64,
) (domain.OptimizeResult, error) {
	tid := budget.TraceIDFromContext(ctx)

	check := budget.CheckBudget(basket, budgetRub)
	logger.Info("Basket received",
		"trace_id", tid,
		"items", len(basket),
		"total", check.Total,
		"budget", check.Budget,
		"fits", check.Fits,
		"overspend", check.Overspend,
	)

	basket, err := cat.AttachEmbeddings(ctx, basket)
	if err != nil {
		return domain.OptimizeResult{}, fmt.Errorf("attach embeddings: %w", err)
	}

	res := opt.Optimize(ctx, budget.Request{
		Basket:    basket,
		BudgetRub: &budgetRub,
	})

	logger.Info("Basket optimized",
		"trace_id", tid,
		"total", res.TotalPrice,
		"saved", res.Saved,
		"replacements", len(res.Replacements),
		"within_budget", res.WithinBudget,
		"message", res.Message,
		"errors", res.Errors,
	)

	return res, nil
}
