package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basketDebate/business/budget"
	"basketDebate/business/catalog"
	"basketDebate/business/simulation"
	"basketDebate/domain"
	psqlRepo "basketDebate/internal/repository/postgres"
	redisRepo "basketDebate/internal/repository/redis"
	"basketDebate/pkg/config"
	"basketDebate/pkg/database"
	redisdb "basketDebate/pkg/database/redis"
	"basketDebate/pkg/logger"
	"basketDebate/pkg/metrics"
	"basketDebate/pkg/resolver"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting basket runner", "version", cfg.App.Version)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.ClosePostgres(db); err != nil {
			logger.Error("Database close error", "error", err)
		}
	}()

	logger.Info("Database connected successfully")

	productRepo := psqlRepo.NewProductRepository(db)
	if err := productRepo.AutoMigrate(ctx); err != nil {
		logger.Fatal("Failed to migrate catalog", "error", err)
	}

	cache, closeCache := newEmbeddingCache(cfg)
	defer closeCache()

	catalogService := catalog.NewService(productRepo, cache, catalog.Config{
		MinPriceRatio:    cfg.Catalog.MinPriceRatio,
		MaxPriceRatio:    cfg.Catalog.MaxPriceRatio,
		DefaultBudgetRub: resolver.DefaultBudgetRub,
	})

	constraints, err := loadConstraints(cfg.Simulation.ConstraintsPath)
	if err != nil {
		logger.Fatal("Failed to load constraints", "error", err)
	}

	simCfg, err := simulation.LoadConfig(cfg.Simulation.RewardConfigPath)
	if err != nil {
		logger.Fatal("Failed to load simulation config", "error", err)
	}
	simCfg.MaxSteps = cfg.Simulation.MaxSteps

	optimizer := budget.NewOptimizer(catalogService, budget.Config{
		MinDiscount:    cfg.Optimizer.MinDiscount,
		CandidateLimit: cfg.Optimizer.CandidateLimit,
	})

	var admin *echo.Echo
	if cfg.App.MetricsAddr != "" {
		e := newAdminServer(cfg.App.Version)
		go func() {
			logger.Info("Admin server starting", "address", cfg.App.MetricsAddr)
			if err := e.Start(cfg.App.MetricsAddr); err != nil && err != http.ErrServerClosed {
				logger.Error("Admin server stopped", "error", err)
			}
		}()
		admin = e
	}

	if cfg.Optimizer.BasketPath != "" {
		runBasketFile(ctx, catalogService, optimizer, cfg.Optimizer.BasketPath, constraints.BudgetRub)
	} else {
		runEpisodes(ctx, catalogService, optimizer, constraints, simCfg, cfg.Simulation)
	}

	if admin != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := admin.Shutdown(shutdownCtx); err != nil {
			logger.Error("Admin server shutdown error", "error", err)
		}
	}

	logger.Info("Runner stopped")
}

// newEmbeddingCache prefers the shared Redis cache and falls back to an
// in-process one when Redis is disabled or unreachable.
func newEmbeddingCache(cfg *config.Config) (catalog.EmbeddingCache, func()) {
	if cfg.Redis.Enabled {
		client, err := redisdb.NewRedisClient(cfg)
		if err == nil {
			logger.Info("Redis connected successfully")
			return redisRepo.NewEmbeddingCache(client, cfg.Catalog.CacheTTL), func() {
				if err := redisdb.CloseRedisClient(client); err != nil {
					logger.Error("Redis close error", "error", err)
				}
			}
		}
		logger.Warn("Redis unavailable, using in-memory embedding cache", "error", err)
	}

	mem, err := catalog.NewMemoryCache(cfg.Catalog.CacheSize)
	if err != nil {
		logger.Fatal("Failed to create embedding cache", "error", err)
	}
	return mem, func() {
		logger.Info("In-memory embedding cache released", "entries", mem.Len())
	}
}

func runEpisodes(
	ctx context.Context,
	cat episodeCatalog,
	opt basketOptimizer,
	constraints domain.Constraints,
	simCfg simulation.Config,
	sim config.SimulationConfig,
) {
	for i := 0; i < sim.Episodes; i++ {
		if ctx.Err() != nil {
			logger.Info("Interrupted, stopping episodes", "completed", i)
			return
		}

		epCtx := budget.WithTraceID(ctx, uuid.NewString())
		if err := runOnce(epCtx, cat, opt, constraints, simCfg, sim.CatalogSize, sim.Seed+int64(i)); err != nil {
			logger.Error("Episode failed", "episode", i, "error", err)
			return
		}
	}
}

func runBasketFile(ctx context.Context, cat episodeCatalog, opt basketOptimizer, path string, budgetRub float64) {
	basket, err := loadBasket(path)
	if err != nil {
		logger.Error("Failed to load basket", "path", path, "error", err)
		return
	}

	if _, err := optimizeBasket(budget.WithTraceID(ctx, uuid.NewString()), cat, opt, basket, budgetRub); err != nil {
		logger.Error("Basket optimization failed", "path", path, "error", err)
	}
}

func loadConstraints(path string) (domain.Constraints, error) {
	payload := []byte("{}")
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.Constraints{}, err
		}
		payload = raw
	}
	return resolver.ParseConstraints(payload)
}
