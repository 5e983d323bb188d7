// Package config loads the machine settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Config is the top-level configuration.
type Config struct {
	Machine MachineConfig `yaml:"machine"`
	Storage StorageConfig `yaml:"storage"`
	Audio   AudioConfig   `yaml:"audio"`
	Refill  RefillConfig  `yaml:"refill"`
	Log     LogConfig     `yaml:"log"`
}

// MachineConfig holds the heating model settings.
type MachineConfig struct {
	PowerWatts float64 `yaml:"power_watts"`
	MinBrew    string  `yaml:"min_brew"` // duration string, e.g. "2s"
	MaxBrew    string  `yaml:"max_brew"`
}

// StorageConfig controls where the levels are persisted.
type StorageConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
	Ephemeral    bool   `yaml:"ephemeral"` // keep levels in memory only
}

// AudioConfig controls the sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// RefillConfig is how much one refill adds, per ingredient.
type RefillConfig struct {
	Water  float64 `yaml:"water"`
	Milk   float64 `yaml:"milk"`
	Coffee float64 `yaml:"coffee"`
	Sugar  float64 `yaml:"sugar"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // off, normal, verbose
	File  string `yaml:"file"`  // "stderr" logs to the console
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Machine: MachineConfig{
			PowerWatts: 20000,
			MinBrew:    "2s",
			MaxBrew:    "5s",
		},
		Storage: StorageConfig{
			SnapshotPath: ".otto-brew/state.json",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.4,
		},
		Refill: RefillConfig{
			Water:  domain.Water.RefillStep(),
			Milk:   domain.Milk.RefillStep(),
			Coffee: domain.Coffee.RefillStep(),
			Sugar:  domain.Sugar.RefillStep(),
		},
		Log: LogConfig{
			Level: "normal",
			File:  ".otto-logs/ottobrew.log",
		},
	}
}

// Load reads a YAML file over the defaults. Environment variables
// referenced as ${VAR} or $VAR are expanded before parsing. A missing file
// is not an error: the defaults are returned as they are.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Machine.PowerWatts <= 0 {
		return fmt.Errorf("config: machine.power_watts must be positive, got %g", c.Machine.PowerWatts)
	}
	if _, _, err := c.BrewBounds(); err != nil {
		return err
	}
	if !c.Storage.Ephemeral && c.Storage.SnapshotPath == "" {
		return fmt.Errorf("config: storage.snapshot_path is required unless storage.ephemeral is set")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	}
	for _, ing := range domain.Ingredients {
		if step := c.Refill.Step(ing); step <= 0 {
			return fmt.Errorf("config: refill.%s must be positive, got %g", ing, step)
		}
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// BrewBounds parses the shortest and longest brew durations. Both must
// stay within the machine's 2s to 5s range.
func (c Config) BrewBounds() (min, max time.Duration, err error) {
	min, err = time.ParseDuration(c.Machine.MinBrew)
	if err != nil {
		return 0, 0, fmt.Errorf("config: machine.min_brew: %w", err)
	}
	max, err = time.ParseDuration(c.Machine.MaxBrew)
	if err != nil {
		return 0, 0, fmt.Errorf("config: machine.max_brew: %w", err)
	}
	if min < engine.DefaultMinBrew || max > engine.DefaultMaxBrew || max < min {
		return 0, 0, fmt.Errorf("config: brew bounds [%s, %s] must lie within [%s, %s]",
			min, max, engine.DefaultMinBrew, engine.DefaultMaxBrew)
	}
	return min, max, nil
}

// Step returns the refill amount for one ingredient.
func (r RefillConfig) Step(ing domain.Ingredient) float64 {
	switch ing {
	case domain.Water:
		return r.Water
	case domain.Milk:
		return r.Milk
	case domain.Coffee:
		return r.Coffee
	case domain.Sugar:
		return r.Sugar
	default:
		return 0
	}
}
