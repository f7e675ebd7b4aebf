// Package config loads engine parameters from YAML files with environment
// variable expansion, default filling, and validation.
package config

import (
	"errors"
	"fmt"
)

// Default values for optional configuration fields.
const (
	DefaultTickSize           = 0.01
	DefaultReauctionThreshold = 0.70
	DefaultPriceTolerance     = 0.0001
)

// Config is the root configuration document.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig holds the tunable clearing parameters.
type EngineConfig struct {
	// TickSize is the minimum price increment bids must be multiples of.
	TickSize float64 `yaml:"tick_size"`
	// ReauctionThreshold is the unsold-supply ratio that triggers
	// re-auction advice.
	ReauctionThreshold float64 `yaml:"reauction_threshold"`
	// PriceTolerance is the seller-pass slack around the clearing price.
	PriceTolerance float64 `yaml:"price_tolerance"`
}

func (c *Config) applyDefaults() {
	if c.Engine.TickSize == 0 {
		c.Engine.TickSize = DefaultTickSize
	}
	if c.Engine.ReauctionThreshold == 0 {
		c.Engine.ReauctionThreshold = DefaultReauctionThreshold
	}
	if c.Engine.PriceTolerance == 0 {
		c.Engine.PriceTolerance = DefaultPriceTolerance
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Engine.TickSize <= 0 {
		return errors.New("engine.tick_size must be > 0")
	}
	if c.Engine.ReauctionThreshold < 0 || c.Engine.ReauctionThreshold > 1 {
		return fmt.Errorf("engine.reauction_threshold must be between 0 and 1, got %v", c.Engine.ReauctionThreshold)
	}
	if c.Engine.PriceTolerance < 0 {
		return errors.New("engine.price_tolerance must be >= 0")
	}
	return nil
}

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
