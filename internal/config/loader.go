package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tailscale/hujson"

	"github.com/zephyrtronium/calc"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC config file, expands ${{ .Env.VAR }} templates, strips
// comments and trailing commas, unmarshals it into Config, and applies
// defaults. A missing file gives the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is like Load but reads the config from data.
func Parse(data []byte) (*Config, error) {
	// Expand templates before standardizing, since templates are in strings.
	expanded := expandEnvTemplates(string(data))
	std, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when there is no config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

func validate(cfg *Config) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, not %d", cfg.MaxDepth)
	}
	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always, or never, not %q", cfg.Color)
	}
	return nil
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = calc.DefaultMaxDepth
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(CalcPath(), "calculator.log")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}
	if cfg.Log.Console == "" {
		cfg.Log.Console = "info"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(CalcPath(), "history.db")
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
}
