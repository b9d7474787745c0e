package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a variant's configuration over the hard-coded defaults.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Keys missing from the chosen file keep their default values.
func Load[T any](variantID, customPath string, defaults T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := defaults
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := variantID + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath, defaults); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", filename), defaults); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	if data := DefaultYAML(variantID); data != nil {
		cfg := defaults
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}
	return defaults, nil // Fallback to hardcoded if embed fails
}

func tryFile[T any](path string, defaults T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, false
	}
	cfg := defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaults, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadBreakout loads Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return Load("breakout", customPath, DefaultBreakoutConfig())
}

// LoadRunner loads runner configuration.
func LoadRunner(customPath string) (RunnerConfig, error) {
	return Load("runner", customPath, DefaultRunnerConfig())
}

// LoadFlappy loads Flappy configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return Load("flappy", customPath, DefaultFlappyConfig())
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return Load("pong", customPath, DefaultPongConfig())
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return Load("snake", customPath, DefaultSnakeConfig())
}

// LoadMemory loads memory match configuration.
func LoadMemory(customPath string) (MemoryConfig, error) {
	return Load("memory", customPath, DefaultMemoryConfig())
}

// LoadMerge loads merge configuration.
func LoadMerge(customPath string) (MergeConfig, error) {
	return Load("merge", customPath, DefaultMergeConfig())
}
