package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/history"
)

// maxLine is the longest input line the REPL accepts.
const maxLine = 16 << 20

func (a *app) newREPLCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Read expressions line by line and print their results (default)",
		Action: a.runREPL,
	}
}

func (a *app) runREPL(ctx context.Context, cmd *cli.Command) error {
	if err := a.setup(cmd); err != nil {
		return err
	}
	defer a.close()

	prompt := ""
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		prompt = a.cfg.Prompt
	}
	a.logger.Debug("repl started", "interactive", prompt != "")

	// Read in the background so that an interrupt ends the loop even while
	// waiting for input. On interrupt the reader goroutine stays blocked in
	// Scan until a.stdin returns from Read; it exits then without sending.
	sc := bufio.NewScanner(a.stdin)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	ev := a.evaluator()
	for {
		fmt.Fprint(a.stdout, prompt)
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			if prompt != "" {
				fmt.Fprintln(a.stdout)
			}
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			if prompt != "" {
				fmt.Fprintln(a.stdout)
			}
			return sc.Err()
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			return nil
		}
		a.evaluate(ctx, ev, line)
	}
}

// evaluate evaluates one input, prints its result, and journals it when
// history is enabled. Problems in the input reach the console through the
// evaluator's reporter.
func (a *app) evaluate(ctx context.Context, ev *calc.Evaluator, s string) float64 {
	r, errs := ev.Evaluate(s)
	fmt.Fprintln(a.stdout, formatResult(r, a.cfg.Format))
	if a.journal != nil {
		e := history.Entry{Session: a.session, Input: s, Result: r, Warnings: len(errs)}
		if _, err := a.journal.Append(ctx, e); err != nil {
			a.logger.Error("journal append", "error", err)
		}
	}
	return r
}
