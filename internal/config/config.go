// Package config loads the calculator's settings.
package config

// Config is the root configuration for the calculator.
type Config struct {
	// Prompt is printed before each line the REPL reads from a terminal.
	Prompt string `json:"prompt"`
	// Format is a fmt verb for results. Empty means the shortest
	// representation that reads back the same, e.g. "7.0" or "1e+20".
	Format string `json:"format"`
	// MaxDepth is the evaluator's nesting limit.
	MaxDepth int           `json:"max_depth"`
	Log      LogConfig     `json:"log"`
	History  HistoryConfig `json:"history"`
	// Color is "auto", "always", or "never".
	Color string `json:"color"`
}

// LogConfig configures logging.
type LogConfig struct {
	File    string `json:"file"`    // log file path; "-" disables the file
	Level   string `json:"level"`   // file level (default: debug)
	Console string `json:"console"` // stderr level (default: info)
}

// HistoryConfig configures the evaluation journal.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"` // SQLite database (default: $CALC_PATH/history.db)
}
