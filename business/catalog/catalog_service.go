package catalog

import (
	"context"
	"fmt"
	"time"

	"basketDebate/business/simulation"
	"basketDebate/domain"
	"basketDebate/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	domain.CandidateFinder
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindEmbedding(ctx context.Context, id int64) ([]float32, error)
	Connection(ctx context.Context, fn func(domain.CandidateFinder) error) error
}

const (
	defaultMinPriceRatio = 0.02
	defaultMaxPriceRatio = 0.3
	defaultBudgetRub     = 5000.0
)

type Config struct {
	// episode products are priced within [budget*MinPriceRatio, budget*MaxPriceRatio]
	MinPriceRatio float64
	MaxPriceRatio float64

	// drop products without a usable meal component label
	RequireMealComponents bool

	// used when the constraints carry no positive budget
	DefaultBudgetRub float64
}

func DefaultConfig() Config {
	return Config{
		MinPriceRatio:    defaultMinPriceRatio,
		MaxPriceRatio:    defaultMaxPriceRatio,
		DefaultBudgetRub: defaultBudgetRub,
	}
}

// Service is the catalog collaborator of the simulation and the optimizer.
// The embedding cache is owned by the service and shared by every caller
// holding it.
type Service struct {
	repo  ProductRepository
	cache EmbeddingCache
	cfg   Config
}

func NewService(repo ProductRepository, cache EmbeddingCache, cfg Config) *Service {
	if cfg.DefaultBudgetRub <= 0 {
		cfg.DefaultBudgetRub = defaultBudgetRub
	}
	return &Service{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

func (s *Service) FetchCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]domain.Product, error) {
	products, err := s.repo.FindCandidates(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	s.warm(ctx, products)
	return products, nil
}

// FetchByID returns nil, nil for an unknown id.
func (s *Service) FetchByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	if p != nil {
		s.warm(ctx, []domain.Product{*p})
	}
	return p, nil
}

// Embedding looks the vector up in the cache first and falls back to the
// store, filling the cache on the way out. Unknown products and products
// without a vector yield nil, nil.
func (s *Service) Embedding(ctx context.Context, id int64) ([]float32, error) {
	if s.cache != nil {
		v, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Warn("catalog_cache_get_failed", "product_id", id, "err", err)
		} else if ok {
			return v, nil
		}
	}

	v, err := s.repo.FindEmbedding(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load embedding %d: %w", id, err)
	}
	if v == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, v); err != nil {
			logger.Warn("catalog_cache_set_failed", "product_id", id, "err", err)
		}
	}
	return v, nil
}

// AttachEmbeddings returns a copy of basket where items lacking a vector get
// the catalog one. Items the catalog cannot resolve are left as they are and
// will fail basket validation.
func (s *Service) AttachEmbeddings(ctx context.Context, basket []domain.BasketItem) ([]domain.BasketItem, error) {
	out := make([]domain.BasketItem, len(basket))
	copy(out, basket)

	for i := range out {
		if len(out[i].Embedding) > 0 || out[i].ID <= 0 {
			continue
		}
		v, err := s.Embedding(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Embedding = v
	}
	return out, nil
}

// WithSession runs fn on a single store connection.
func (s *Service) WithSession(ctx context.Context, fn func(domain.CandidateFinder) error) error {
	start := time.Now()
	err := s.repo.Connection(ctx, fn)
	logger.Debug("catalog_session_closed",
		"duration_ms", time.Since(start).Milliseconds(),
		"err", err,
	)
	return err
}

// EpisodeProducts builds the fixed product list of one simulation episode:
// a random sample of products priced in the budget window and compatible with
// the tag constraints, padded to exactly k entries.
func (s *Service) EpisodeProducts(ctx context.Context, c domain.Constraints, k int) ([]domain.Product, error) {
	if k <= 0 {
		return []domain.Product{}, nil
	}

	budget := c.BudgetRub
	if budget <= 0 {
		budget = s.cfg.DefaultBudgetRub
	}
	minPrice := budget * s.cfg.MinPriceRatio
	maxPrice := budget * s.cfg.MaxPriceRatio

	products, err := s.FetchCandidates(ctx, domain.CandidateFilter{
		MinPrice:              &minPrice,
		MaxPrice:              &maxPrice,
		ExcludeTags:           c.ExcludeTags,
		IncludeTags:           c.IncludeTags,
		PricedOnly:            true,
		RequireMealComponents: s.cfg.RequireMealComponents,
		Shuffle:               true,
	}, k)
	if err != nil {
		return nil, err
	}

	logger.Debug("catalog_episode_products",
		"budget", budget,
		"min_price", minPrice,
		"max_price", maxPrice,
		"found", len(products),
		"size", k,
	)

	return simulation.PadProducts(products, k), nil
}

func (s *Service) warm(ctx context.Context, products []domain.Product) {
	if s.cache == nil {
		return
	}
	for _, p := range products {
		if len(p.Embedding) == 0 {
			continue
		}
		if err := s.cache.Set(ctx, p.ID, p.Embedding); err != nil {
			logger.Warn("catalog_cache_set_failed", "product_id", p.ID, "err", err)
			return
		}
	}
}
