package config

import (
	"os"
	"strconv"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
)

// ApplyEnv overrides c from VV_* environment variables. Unset or
// unparsable values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("VV_PLAYER"); v != "" {
		c.Player.Name = v
	}
	if v := os.Getenv("VV_DIFFICULTY"); v != "" {
		c.Player.Difficulty = domain.Difficulty(v)
	}
	if v := os.Getenv("VV_STORE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("VV_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("VV_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("VV_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = &n
		}
	}

	// Preset switch replaces the whole tuning block.
	if mode := os.Getenv("VV_PRESET"); mode != "" {
		if t, ok := TuningPreset(mode); ok {
			c.Preset = mode
			c.Tuning = t
		}
	}

	if val := getEnvInt("VV_MAX_ENERGY"); val > 0 {
		c.Tuning.MaxEnergy = val
	}
	if val := getEnvInt("VV_DAILY_FREE_HINTS"); val > 0 {
		c.Tuning.DailyFreeHints = val
	}
	if val := getEnvInt("VV_QUEUE_CAPACITY"); val > 0 {
		c.Tuning.QueueCapacity = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
