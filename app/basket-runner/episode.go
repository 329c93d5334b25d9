package main

import (
	"context"
	"fmt"

	"basketDebate/business/budget"
	"basketDebate/business/simulation"
	"basketDebate/domain"
	"basketDebate/pkg/logger"
)

type episodeCatalog interface {
	EpisodeProducts(ctx context.Context, c domain.Constraints, k int) ([]domain.Product, error)
	AttachEmbeddings(ctx context.Context, basket []domain.BasketItem) ([]domain.BasketItem, error)
}

type basketOptimizer interface {
	Optimize(ctx context.Context, req budget.Request) domain.OptimizeResult
}

// runOnce plays one episode over a fresh product sample and hands the
// resulting basket to the optimizer.
func runOnce(
	ctx context.Context,
	cat episodeCatalog,
	opt basketOptimizer,
	constraints domain.Constraints,
	simCfg simulation.Config,
	catalogSize int,
	seed int64,
) error {
	tid := budget.TraceIDFromContext(ctx)

	products, err := cat.EpisodeProducts(ctx, constraints, catalogSize)
	if err != nil {
		return fmt.Errorf("episode products: %w", err)
	}

	env := simulation.New(products, constraints, simCfg)
	summary := runEpisode(env, newRandomPolicy(seed, env.NumActions()))

	logger.Info("Episode finished",
		"trace_id", tid,
		"steps", summary.Steps,
		"cart_size", len(summary.Products),
		"spend", summary.Spend,
		"budget", constraints.BudgetRub,
		"reward_budget", summary.Rewards[simulation.RoleBudget],
		"reward_compat", summary.Rewards[simulation.RoleCompat],
		"reward_profile", summary.Rewards[simulation.RoleProfile],
	)

	_, err = optimizeBasket(ctx, cat, opt, cartToBasket(summary.Products), constraints.BudgetRub)
	return err
}
