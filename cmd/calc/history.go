package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/zephyrtronium/calc/internal/history"
)

func (a *app) newHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show journaled evaluations",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of latest entries to show (0 = all)",
				Value:   20,
			},
			&cli.StringFlag{
				Name:    "session",
				Aliases: []string{"s"},
				Usage:   "Show only this session's entries",
			},
		},
		Action: a.runHistory,
	}
}

func (a *app) runHistory(ctx context.Context, cmd *cli.Command) error {
	if err := a.setup(cmd); err != nil {
		return err
	}
	defer a.close()

	path := a.cfg.History.Path
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(a.stdout, "No history found.")
		return nil
	}
	j := a.journal
	if j == nil {
		var err error
		j, err = history.Open(path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer j.Close()
	}

	var (
		entries []history.Entry
		err     error
	)
	if id := cmd.String("session"); id != "" {
		entries, err = j.Session(ctx, id)
		if n := cmd.Int("limit"); err == nil && n > 0 && len(entries) > n {
			entries = entries[len(entries)-n:]
		}
	} else {
		entries, err = j.Recent(ctx, cmd.Int("limit"))
	}
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No history found.")
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSESSION\tTIME\tINPUT\tRESULT\tWARNINGS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			e.ID,
			e.Session,
			e.Time.Local().Format("2006-01-02 15:04:05"),
			e.Input,
			formatResult(e.Result, a.cfg.Format),
			e.Warnings,
		)
	}
	return w.Flush()
}
