package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/history"
	"github.com/zephyrtronium/calc/internal/logging"
)

// app holds what commands share once flags and config are resolved.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	cfg     *config.Config
	logger  *slog.Logger
	logs    io.Closer
	session string
	// journal is nil unless history is enabled.
	journal *history.Journal
}

// newRootCommand returns the top-level CLI command.
func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	return &cli.Command{
		Name:  "calc",
		Usage: "Evaluate arithmetic expressions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging on the console",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "fmt verb for results, e.g. %.3f",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Limit on expression nesting",
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "Record evaluations in the history journal",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Action: a.runREPL,
		Commands: []*cli.Command{
			a.newREPLCommand(),
			a.newEvalCommand(),
			a.newTokensCommand(),
			a.newHistoryCommand(),
		},
	}
}

// setup loads the config, applies flag overrides, and opens the logger and,
// when enabled, the history journal.
func (a *app) setup(cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("max-depth") {
		n := cmd.Int("max-depth")
		if n <= 0 {
			return fmt.Errorf("max-depth must be positive, not %d", n)
		}
		cfg.MaxDepth = n
	}
	if cmd.Bool("history") {
		cfg.History.Enabled = true
	}
	if cmd.Bool("no-color") {
		cfg.Color = "never"
	}
	a.cfg = cfg

	logger, closer, err := logging.New(cfg.Log, cmd.Bool("debug"), a.stderr, renderer(a.stderr, cfg.Color))
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	a.session = history.NewSessionID()
	a.logger = logger.With("session", a.session)
	a.logs = closer

	if cfg.History.Enabled {
		j, err := history.Open(cfg.History.Path)
		if err != nil {
			closer.Close()
			return fmt.Errorf("open history: %w", err)
		}
		a.journal = j
	}
	return nil
}

// close releases what setup opened.
func (a *app) close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Error("close history", "error", err)
		}
		a.journal = nil
	}
	if a.logs != nil {
		a.logs.Close()
		a.logs = nil
	}
}

// evaluator creates an evaluator reporting to the app's logger.
func (a *app) evaluator() *calc.Evaluator {
	opts := []calc.Option{calc.Report(logging.Reporter(a.logger))}
	if a.cfg.MaxDepth > 0 {
		opts = append(opts, calc.MaxDepth(a.cfg.MaxDepth))
	}
	return calc.NewEvaluator(opts...)
}

// renderer returns the lipgloss renderer for the color setting, or nil for
// no styling.
func renderer(w io.Writer, color string) *lipgloss.Renderer {
	switch color {
	case "never":
		return nil
	case "always":
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI256)
		return r
	}
	// Auto-detection styles only terminals and honors NO_COLOR.
	return lipgloss.NewRenderer(w)
}
