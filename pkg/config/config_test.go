package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 100, cfg.Simulation.CatalogSize)
	assert.Equal(t, 10, cfg.Simulation.MaxSteps)
	assert.Equal(t, 0.3, cfg.Optimizer.MinDiscount)
	assert.Equal(t, 0.02, cfg.Catalog.MinPriceRatio)
	assert.Equal(t, 0.3, cfg.Catalog.MaxPriceRatio)
	assert.Equal(t, 24*time.Hour, cfg.Catalog.CacheTTL)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SIM_CATALOG_SIZE", "64")
	t.Setenv("SIM_REWARD_CONFIG", "configs/rewards.yaml")
	t.Setenv("OPTIMIZER_MIN_DISCOUNT", "0.25")
	t.Setenv("CATALOG_CACHE_TTL", "30m")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("OPTIMIZER_BASKET_FILE", "basket.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Simulation.CatalogSize)
	assert.Equal(t, "configs/rewards.yaml", cfg.Simulation.RewardConfigPath)
	assert.Equal(t, 0.25, cfg.Optimizer.MinDiscount)
	assert.Equal(t, 30*time.Minute, cfg.Catalog.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "basket.json", cfg.Optimizer.BasketPath)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing password": {"DB_PASSWORD": ""},
		"bad int":          {"DB_PASSWORD": "secret", "SIM_MAX_STEPS": "ten"},
		"bad float":        {"DB_PASSWORD": "secret", "OPTIMIZER_MIN_DISCOUNT": "lots"},
		"discount range":   {"DB_PASSWORD": "secret", "OPTIMIZER_MIN_DISCOUNT": "1.5"},
		"inverted window":  {"DB_PASSWORD": "secret", "CATALOG_MIN_PRICE_RATIO": "0.5"},
		"bad ttl":          {"DB_PASSWORD": "secret", "CATALOG_CACHE_TTL": "soon"},
		"zero steps":       {"DB_PASSWORD": "secret", "SIM_MAX_STEPS": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "products", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=products port=5432 sslmode=disable", d.DSN())
}
