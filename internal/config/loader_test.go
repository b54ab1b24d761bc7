package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestLoad(t *testing.T) {
	content := `{
	// This is a JSONC comment
	"prompt": "calc> ",
	"format": "%.3f",
	"max_depth": 64,
	"log": {
		"file": "${{ .Env.CALC_TEST_LOG }}",
		"console": "warn",
	},
	"history": {
		"enabled": true,
		"path": "/tmp/h.db"
	},
	"color": "never", /* trailing comma above and here */
}`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CALC_TEST_LOG", "/var/log/calc.log")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Prompt != "calc> " {
		t.Errorf("expected prompt %q, got %q", "calc> ", cfg.Prompt)
	}
	if cfg.Format != "%.3f" {
		t.Errorf("expected format %%.3f, got %s", cfg.Format)
	}
	if cfg.MaxDepth != 64 {
		t.Errorf("expected max_depth 64, got %d", cfg.MaxDepth)
	}
	if cfg.Log.File != "/var/log/calc.log" {
		t.Errorf("expected expanded log file, got %s", cfg.Log.File)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected default log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Console != "warn" {
		t.Errorf("expected console level warn, got %s", cfg.Log.Console)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/h.db" {
		t.Errorf("unexpected history config %+v", cfg.History)
	}
	if cfg.Color != "never" {
		t.Errorf("expected color never, got %s", cfg.Color)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALC_PATH", dir)
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Prompt != "> " {
		t.Errorf("expected default prompt, got %q", cfg.Prompt)
	}
	if cfg.Format != "" {
		t.Errorf("expected empty format, got %q", cfg.Format)
	}
	if cfg.MaxDepth != calc.DefaultMaxDepth {
		t.Errorf("expected default max_depth, got %d", cfg.MaxDepth)
	}
	if cfg.Log.File != filepath.Join(dir, "calculator.log") {
		t.Errorf("expected default log file, got %s", cfg.Log.File)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Console != "info" {
		t.Errorf("unexpected default levels %+v", cfg.Log)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled by default")
	}
	if cfg.History.Path != filepath.Join(dir, "history.db") {
		t.Errorf("expected default history path, got %s", cfg.History.Path)
	}
	if cfg.Color != "auto" {
		t.Errorf("expected color auto, got %s", cfg.Color)
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALC_PATH", dir)
	cfg, err := Load(filepath.Join(dir, "nope.jsonc"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":    `{"prompt": }`,
		"type":      `{"max_depth": "deep"}`,
		"negative":  `{"max_depth": -1}`,
		"bad-color": `{"color": "sometimes"}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(content)); err == nil {
				t.Errorf("expected error for %s", content)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("CALC_PATH", "/opt/calc")
	if got := CalcPath(); got != "/opt/calc" {
		t.Errorf("expected /opt/calc, got %s", got)
	}
	if got := ConfigPath(); got != filepath.Join("/opt/calc", "config.jsonc") {
		t.Errorf("unexpected config path %s", got)
	}
}

func TestPathsDefault(t *testing.T) {
	t.Setenv("CALC_PATH", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := CalcPath(); got != filepath.Join(home, ".calc") {
		t.Errorf("expected ~/.calc, got %s", got)
	}
}
