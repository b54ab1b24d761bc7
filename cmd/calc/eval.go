package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/zephyrtronium/calc"
)

func (a *app) newEvalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate each argument in order; _ refers to the previous one",
		ArgsUsage: "<expression>...",
		Action:    a.runEval,
	}
}

func (a *app) runEval(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("usage: calc eval <expression>...")
	}
	if err := a.setup(cmd); err != nil {
		return err
	}
	defer a.close()

	ev := a.evaluator()
	for _, s := range args {
		a.evaluate(ctx, ev, s)
	}
	return nil
}

func (a *app) newTokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Print the normalized form of an expression and its tokens",
		ArgsUsage: "<expression>",
		Action:    a.runTokens,
	}
}

func (a *app) runTokens(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: calc tokens <expression>")
	}
	expr := calc.Normalize(cmd.Args().First())
	fmt.Fprintf(a.stdout, "normalized: %q\n", expr)
	for _, tok := range calc.Tokenize(expr) {
		fmt.Fprintln(a.stdout, tok)
	}
	return nil
}
