package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/renderer"
)

type strategyCmd struct {
	profileFlags
}

func (*strategyCmd) Name() string { return "strategy" }
func (*strategyCmd) Synopsis() string {
	return "show the strategy and weights selected for a profile"
}
func (*strategyCmd) Usage() string {
	return `tgr strategy -budget <amount> [profile flags]

  Scores the profile, selects the allocation template and restricts it to the
  preferred asset classes. No instrument is picked.
`
}

func (c *strategyCmd) SetFlags(f *flag.FlagSet) { c.profileFlags.SetFlags(f) }

func (c *strategyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := Logger()

	p, err := c.Profile(cfg.BaseCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in profile: %v\n", err)
		return subcommands.ExitUsageError
	}
	// the budget factor is scored in the base currency.
	p, err = allocation.ConvertProfile(ctx, cfg.rates(log), p, cfg.BaseCurrency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	engine, err := allocation.NewEngine(cfg.Engine, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, w, err := engine.Weights(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Strategy(s, w, allocation.ScoreProfile(p), cfg.language()))
	return subcommands.ExitSuccess
}
