// Package config loads runtime configuration: an optional YAML file, a
// .env file, VV_* environment overrides and balance presets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "vintagevendor.yaml"

// Storage backends.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

type Config struct {
	Player  PlayerConfig  `yaml:"player" json:"player"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Log     LogConfig     `yaml:"log" json:"log"`
	// Seed fixes order and customer generation. Nil means wall clock.
	Seed *int64 `yaml:"seed" json:"seed,omitempty"`
	// Preset picks a base Tuning; explicit tuning fields override it.
	Preset string `yaml:"preset" json:"preset"`
	Tuning Tuning `yaml:"tuning" json:"tuning"`
}

type PlayerConfig struct {
	Name       string            `yaml:"name" json:"name"`
	Difficulty domain.Difficulty `yaml:"difficulty" json:"difficulty"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	Path    string `yaml:"path" json:"path"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Player:  PlayerConfig{Name: "Player"},
		Storage: StorageConfig{Backend: StoreSQLite, Path: ".vintagevendor/save.db"},
		Log:     LogConfig{Level: "normal", File: ".vintagevendor/vintagevendor.log"},
		Tuning:  DefaultTuning(),
	}
}

// ApplyDefaults fills unset fields. Tuning gaps come from the preset.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Player.Name == "" {
		c.Player.Name = d.Player.Name
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case StoreFile:
			c.Storage.Path = ".vintagevendor/save.json"
		default:
			c.Storage.Path = d.Storage.Path
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if base, ok := TuningPreset(c.Preset); ok {
		c.Tuning.fillZero(base)
	} else {
		c.Tuning.fillZero(DefaultTuning())
	}
}

// Load reads the YAML file at path. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	c.ApplyDefaults()
	return &c, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none)
// into the process environment. Missing files are skipped; variables that
// are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Validate reports the first invalid field, wrapped in
// domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Player.Difficulty != "" && !c.Player.Difficulty.Valid() {
		return invalid("difficulty %q", c.Player.Difficulty)
	}
	switch c.Storage.Backend {
	case StoreSQLite, StoreFile:
		if c.Storage.Path == "" {
			return invalid("storage path is required for %s", c.Storage.Backend)
		}
	case StoreMemory:
	default:
		return invalid("storage backend %q", c.Storage.Backend)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return invalid("%v", err)
	}
	if _, ok := TuningPreset(c.Preset); !ok {
		return invalid("preset %q", c.Preset)
	}

	t := c.Tuning
	switch {
	case t.MaxEnergy <= 0:
		return invalid("max_energy must be positive")
	case t.EnergyInterval <= 0:
		return invalid("energy_interval must be positive")
	case t.LevelThreshold <= 0:
		return invalid("level_threshold must be positive")
	case t.QueueCapacity <= 0:
		return invalid("queue_capacity must be positive")
	case t.SpawnInterval <= 0:
		return invalid("spawn_interval must be positive")
	case t.MinRoundSeconds <= 0:
		return invalid("min_round_seconds must be positive")
	case t.DailyFreeHints < 0, t.WrongServeScorePenalty < 0, t.PatienceLoss < 0:
		return invalid("negative tuning value")
	}
	return nil
}
