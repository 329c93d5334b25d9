package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Simulation SimulationConfig
	Optimizer  OptimizerConfig
	Catalog    CatalogConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	MetricsAddr string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int `validate:"gte=1"`
	MaxIdleConns int `validate:"gte=0"`
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
	Enabled       bool
}

type SimulationConfig struct {
	CatalogSize      int `validate:"gte=1"`
	MaxSteps         int `validate:"gte=1"`
	Episodes         int `validate:"gte=1"`
	Seed             int64
	RewardConfigPath string
	ConstraintsPath  string
}

type OptimizerConfig struct {
	MinDiscount    float64 `validate:"gte=0,lt=1"`
	CandidateLimit int     `validate:"gte=0"`

	// optimize this JSON basket instead of simulating episodes
	BasketPath string
}

type CatalogConfig struct {
	MinPriceRatio float64 `validate:"gte=0"`
	MaxPriceRatio float64 `validate:"gtfield=MinPriceRatio"`
	CacheSize     int     `validate:"gte=0"`
	CacheTTL      time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	intEnv := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		errs = append(errs, err)
		return v
	}
	floatEnv := func(key string, def float64) float64 {
		v, err := getEnvFloat(key, def)
		errs = append(errs, err)
		return v
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "basket-debate"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			MetricsAddr: getEnv("METRICS_ADDR", ""),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "products"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: intEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: intEnv("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       intEnv("REDIS_DB", 0),
			Enabled:       getEnv("REDIS_ENABLED", "true") == "true",
		},
		Simulation: SimulationConfig{
			CatalogSize:      intEnv("SIM_CATALOG_SIZE", 100),
			MaxSteps:         intEnv("SIM_MAX_STEPS", 10),
			Episodes:         intEnv("SIM_EPISODES", 1),
			Seed:             int64(intEnv("SIM_SEED", 42)),
			RewardConfigPath: getEnv("SIM_REWARD_CONFIG", ""),
			ConstraintsPath:  getEnv("SIM_CONSTRAINTS_FILE", ""),
		},
		Optimizer: OptimizerConfig{
			MinDiscount:    floatEnv("OPTIMIZER_MIN_DISCOUNT", 0.3),
			CandidateLimit: intEnv("OPTIMIZER_CANDIDATE_LIMIT", 0),
			BasketPath:     getEnv("OPTIMIZER_BASKET_FILE", ""),
		},
		Catalog: CatalogConfig{
			MinPriceRatio: floatEnv("CATALOG_MIN_PRICE_RATIO", 0.02),
			MaxPriceRatio: floatEnv("CATALOG_MAX_PRICE_RATIO", 0.3),
			CacheSize:     intEnv("CATALOG_CACHE_SIZE", 10000),
		},
	}

	ttl, err := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "24h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_TTL: %w", err))
	}
	cfg.Catalog.CacheTTL = ttl

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DSN is the postgres connection string for the catalog database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
