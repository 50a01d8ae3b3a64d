package probemap

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config mirrors the functional options in a form that can be kept in a
// toml file.
//
//	base-size = 1024
//	min-base-size = 53
//	grow-threshold = 70
//	shrink-threshold = 10
//	max-capacity = 0
type Config struct {
	BaseSize        int `toml:"base-size"`
	MinBaseSize     int `toml:"min-base-size"`
	GrowThreshold   int `toml:"grow-threshold"`
	ShrinkThreshold int `toml:"shrink-threshold"`
	MaxCapacity     int `toml:"max-capacity"`
}

func DefaultConfig() Config {
	return Config{
		BaseSize:        DefaultBaseSize,
		MinBaseSize:     DefaultBaseSize,
		GrowThreshold:   DefaultGrowThreshold,
		ShrinkThreshold: DefaultShrinkThreshold,
	}
}

// Decodes a toml document on top of the defaults.
func DecodeConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Loads a toml file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.BaseSize < 2 {
		return fmt.Errorf("%w: base size %d", ErrInvalidSize, c.BaseSize)
	}

	if c.MinBaseSize < 2 {
		return fmt.Errorf("%w: min base size %d", ErrInvalidSize, c.MinBaseSize)
	}

	// A table halved at the shrink threshold has to stay below the grow one.
	if c.ShrinkThreshold < 0 || 2*c.ShrinkThreshold >= c.GrowThreshold || c.GrowThreshold >= 100 {
		return fmt.Errorf("%w: thresholds must satisfy 0 <= 2*shrink < grow < 100, got shrink=%d grow=%d",
			ErrInvalidSize, c.ShrinkThreshold, c.GrowThreshold)
	}

	if c.MaxCapacity < 0 {
		return fmt.Errorf("%w: max capacity %d", ErrInvalidSize, c.MaxCapacity)
	}

	if c.MaxCapacity > 0 {
		capacity, err := NextPrime(max(c.BaseSize, c.MinBaseSize))
		if err != nil {
			return err
		}

		if capacity > c.MaxCapacity {
			return fmt.Errorf("%w: initial capacity %d exceeds limit %d", ErrInvalidSize, capacity, c.MaxCapacity)
		}
	}

	return nil
}

// Applies every policy field of the config. The base size is passed to
// the constructor separately, see NewFromConfig.
func WithConfig(cfg Config) Option {
	return func(t *table) {
		t.minBaseSize = cfg.MinBaseSize
		t.growThreshold = cfg.GrowThreshold
		t.shrinkThreshold = cfg.ShrinkThreshold
		t.maxCapacity = cfg.MaxCapacity
	}
}
