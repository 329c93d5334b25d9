package simulation

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads reward shaping overrides from a YAML file on top of
// DefaultConfig. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read simulation config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse simulation config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.MaxSteps <= 0 {
		return errors.New("max_steps must be positive")
	}
	if cfg.AdmissionSlack <= 0 {
		return errors.New("admission_slack must be positive")
	}
	if cfg.RewardClip <= 0 {
		return errors.New("reward_clip must be positive")
	}
	if cfg.TightBandLow > cfg.TightBandHigh || cfg.LooseBandLow > cfg.LooseBandHigh {
		return errors.New("reward band bounds are inverted")
	}
	return nil
}
