package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// Settings are the process-level options read from ARCADE_* variables.
// CLI flags override them.
type Settings struct {
	DBPath          string `env:"ARCADE_DB"               envDefault:"~/.arcade/arcade.db"`
	Player          string `env:"ARCADE_PLAYER"           envDefault:"local"`
	TickRate        int    `env:"ARCADE_TICK_RATE"        envDefault:"60"`
	MaxDeltaFrames  int    `env:"ARCADE_MAX_DELTA_FRAMES" envDefault:"2"`
	StartingBalance int    `env:"ARCADE_STARTING_BALANCE" envDefault:"100"`
	LogLevel        string `env:"ARCADE_LOG_LEVEL"        envDefault:"warn"`
	LogFile         string `env:"ARCADE_LOG_FILE"`
	SSHAddr         string `env:"ARCADE_SSH_ADDR"         envDefault:":23234"`
	HostKeyPath     string `env:"ARCADE_HOST_KEY"`
}

// LoadSettings parses settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Runtime converts the timing settings into an engine runtime config.
func (s Settings) Runtime(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if s.TickRate > 0 {
		cfg.TickRate = s.TickRate
	}
	if s.MaxDeltaFrames > 0 {
		cfg.MaxDeltaTicks = s.MaxDeltaFrames
	}
	cfg.Seed = seed
	return cfg
}
