package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"basketDebate/business/budget"
	"basketDebate/business/simulation"
	"basketDebate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price float64) domain.Product {
	return domain.Product{ID: id, Name: "p", Category: "grocery", PricePerUnit: price, Unit: "pcs"}
}

func TestCartToBasketGroupsRepeats(t *testing.T) {
	basket := cartToBasket([]domain.Product{product(1, 100), product(2, 50), product(1, 100)})

	require.Len(t, basket, 2)
	assert.Equal(t, int64(1), basket[0].ID)
	assert.Equal(t, 2.0, basket[0].Quantity)
	assert.Equal(t, 200.0, basket[0].TotalPrice)
	assert.Equal(t, int64(2), basket[1].ID)
	assert.Equal(t, 1.0, basket[1].Quantity)
	assert.Equal(t, 50.0, basket[1].TotalPrice)

	empty := cartToBasket(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRandomPolicy(t *testing.T) {
	a := newRandomPolicy(7, 11)
	b := newRandomPolicy(7, 11)

	for i := 0; i < 50; i++ {
		got := a.Act(nil)
		assert.Equal(t, got, b.Act(nil))
		require.Len(t, got, 3)
		for _, v := range got {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 11)
		}
	}

	skip := newRandomPolicy(1, 1).Act(nil)
	for _, role := range simulation.Roles() {
		assert.Equal(t, 0, skip[role])
	}
}

type skipPolicy struct{ calls int }

func (p *skipPolicy) Act(map[simulation.Role]simulation.Observation) map[simulation.Role]int {
	p.calls++
	return map[simulation.Role]int{}
}

func TestRunEpisodeStopsAtMaxSteps(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.MaxSteps = 4
	env := simulation.New(simulation.PadProducts([]domain.Product{product(1, 100)}, 5), domain.Constraints{BudgetRub: 1000, People: 1}, cfg)

	policy := &skipPolicy{}
	summary := runEpisode(env, policy)

	assert.Equal(t, 4, policy.calls)
	assert.Equal(t, 4, summary.Steps)
	assert.Empty(t, summary.Products)
	assert.Equal(t, 0.0, summary.Spend)
	assert.Len(t, summary.Rewards, 3)
}

type fakeEpisodeCatalog struct {
	products  []domain.Product
	err       error
	attachErr error
	attached  []domain.BasketItem
}

func (f *fakeEpisodeCatalog) EpisodeProducts(_ context.Context, _ domain.Constraints, k int) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return simulation.PadProducts(f.products, k), nil
}

func (f *fakeEpisodeCatalog) AttachEmbeddings(_ context.Context, basket []domain.BasketItem) ([]domain.BasketItem, error) {
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	f.attached = basket
	return basket, nil
}

type fakeOptimizer struct {
	calls int
	req   budget.Request
}

func (f *fakeOptimizer) Optimize(_ context.Context, req budget.Request) domain.OptimizeResult {
	f.calls++
	f.req = req
	return domain.OptimizeResult{Basket: req.Basket, WithinBudget: true, Message: "within budget"}
}

func TestRunOnce(t *testing.T) {
	constraints := domain.Constraints{BudgetRub: 2000, People: 1}
	cfg := simulation.DefaultConfig()
	cfg.MaxSteps = 5

	cat := &fakeEpisodeCatalog{products: []domain.Product{product(1, 100), product(2, 150), product(3, 200)}}
	opt := &fakeOptimizer{}

	err := runOnce(budget.WithTraceID(context.Background(), "trace-1"), cat, opt, constraints, cfg, 8, 42)
	require.NoError(t, err)

	require.Equal(t, 1, opt.calls)
	require.NotNil(t, opt.req.BudgetRub)
	assert.Equal(t, 2000.0, *opt.req.BudgetRub)
	assert.Nil(t, opt.req.MinDiscount)
	assert.Equal(t, cat.attached, opt.req.Basket)
	for _, item := range opt.req.Basket {
		assert.NotEqual(t, domain.DummyProductID, item.ID)
	}
}

func TestRunOnceErrors(t *testing.T) {
	cfg := simulation.DefaultConfig()
	constraints := domain.Constraints{BudgetRub: 2000, People: 1}

	opt := &fakeOptimizer{}
	err := runOnce(context.Background(), &fakeEpisodeCatalog{err: errors.New("db down")}, opt, constraints, cfg, 4, 1)
	assert.ErrorContains(t, err, "db down")

	err = runOnce(context.Background(), &fakeEpisodeCatalog{attachErr: errors.New("cache down")}, opt, constraints, cfg, 4, 1)
	assert.ErrorContains(t, err, "cache down")

	assert.Zero(t, opt.calls)
}

func TestAdminServer(t *testing.T) {
	e := newAdminServer("1.2.3")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadBasketNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basket.json")
	payload := `[
		{"id": 3, "product_name": "Cheese", "price": 250, "quantity": 2, "embedding": [1, 0]},
		{"id": 4, "name": "Bread", "total_price": 90}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	basket, err := loadBasket(path)
	require.NoError(t, err)
	require.Len(t, basket, 2)

	assert.Equal(t, "Cheese", basket[0].Name)
	assert.Equal(t, 250.0, basket[0].PricePerUnit)
	assert.Equal(t, 500.0, basket[0].TotalPrice)
	assert.Equal(t, []float32{1, 0}, basket[0].Embedding)
	assert.Equal(t, 1.0, basket[1].Quantity)
	assert.Equal(t, 90.0, basket[1].PricePerUnit)

	_, err = loadBasket(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id": 1}`), 0o600))
	_, err = loadBasket(bad)
	assert.ErrorContains(t, err, "parse basket")
}

func TestOptimizeBasketPassesBudget(t *testing.T) {
	cat := &fakeEpisodeCatalog{}
	opt := &fakeOptimizer{}
	basket := []domain.BasketItem{domain.NewBasketItemFromProduct(product(1, 100), 3)}

	res, err := optimizeBasket(context.Background(), cat, opt, basket, 250)
	require.NoError(t, err)

	assert.Equal(t, "within budget", res.Message)
	require.NotNil(t, opt.req.BudgetRub)
	assert.Equal(t, 250.0, *opt.req.BudgetRub)
	assert.Equal(t, basket, opt.req.Basket)
}
