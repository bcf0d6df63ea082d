// Package config loads model settings from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

// Smoothing method names accepted in configuration files.
const (
	SmoothingMLE                 = "mle"
	SmoothingLidstone            = "lidstone"
	SmoothingLaplace             = "laplace"
	SmoothingWittenBell          = "witten-bell"
	SmoothingAbsoluteDiscounting = "absolute-discounting"
	SmoothingKneserNey           = "kneser-ney"
	SmoothingStupidBackoff       = "stupid-backoff"
)

// Config is the root of a model configuration file.
type Config struct {
	Model ModelConfig `yaml:"model"`
	Vocab VocabConfig `yaml:"vocab"`
}

// ModelConfig selects the n-gram order and scoring rule. Discount and Alpha
// are pointers so an explicit zero is distinguishable from an omitted field;
// nil picks the method's default.
type ModelConfig struct {
	Order     int      `yaml:"order"`
	Smoothing string   `yaml:"smoothing"`
	Gamma     float64  `yaml:"gamma"`    // lidstone pseudo-count
	Discount  *float64 `yaml:"discount"` // absolute-discounting / kneser-ney
	Alpha     *float64 `yaml:"alpha"`    // stupid-backoff penalty
}

// VocabConfig controls how raw tokens map onto the closed vocabulary.
type VocabConfig struct {
	Cutoff int    `yaml:"cutoff"`
	Unk    string `yaml:"unk"`
}

// Default returns the configuration used when no file is given: a bigram
// MLE model over a cutoff-1 vocabulary.
func Default() *Config {
	return &Config{
		Model: ModelConfig{Order: 2, Smoothing: SmoothingMLE, Gamma: 0.1},
		Vocab: VocabConfig{Cutoff: 1, Unk: "<UNK>"},
	}
}

// Load reads and validates a configuration file. Fields omitted in the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings no model constructor would accept.
func (c *Config) Validate() error {
	if c.Model.Order < 1 {
		return fmt.Errorf("%w: model order %d, must be at least 1", internalerr.ErrConfiguration, c.Model.Order)
	}
	switch c.Model.Smoothing {
	case SmoothingMLE, SmoothingLidstone, SmoothingLaplace, SmoothingWittenBell,
		SmoothingAbsoluteDiscounting, SmoothingKneserNey, SmoothingStupidBackoff:
	default:
		return fmt.Errorf("%w: unknown smoothing %q", internalerr.ErrConfiguration, c.Model.Smoothing)
	}
	if c.Model.Gamma < 0 {
		return fmt.Errorf("%w: gamma %v, must not be negative", internalerr.ErrConfiguration, c.Model.Gamma)
	}
	if c.Model.Discount != nil && *c.Model.Discount < 0 {
		return fmt.Errorf("%w: discount %v, must not be negative", internalerr.ErrConfiguration, *c.Model.Discount)
	}
	if c.Model.Alpha != nil && (*c.Model.Alpha < 0 || *c.Model.Alpha > 1) {
		return fmt.Errorf("%w: alpha %v, must be within [0,1]", internalerr.ErrConfiguration, *c.Model.Alpha)
	}
	if c.Vocab.Cutoff < 1 {
		return fmt.Errorf("%w: vocabulary cutoff %d, must be at least 1", internalerr.ErrConfiguration, c.Vocab.Cutoff)
	}
	if c.Vocab.Unk == "" {
		return fmt.Errorf("%w: vocabulary unk label must not be empty", internalerr.ErrConfiguration)
	}
	return nil
}
