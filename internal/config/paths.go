package config

import (
	"os"
	"path/filepath"
)

// CalcPath returns the root directory for calculator data.
// It uses $CALC_PATH if set, otherwise defaults to ~/.calc.
func CalcPath() string {
	if v := os.Getenv("CALC_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".calc")
	}
	return filepath.Join(home, ".calc")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(CalcPath(), "config.jsonc")
}
