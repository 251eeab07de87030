package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/renderer"
)

type recommendCmd struct {
	profileFlags
	id   string
	save bool
	json bool
}

func (*recommendCmd) Name() string     { return "recommend" }
func (*recommendCmd) Synopsis() string { return "recommend a portfolio for an investor profile" }
func (*recommendCmd) Usage() string {
	return `tgr recommend -budget <amount> [-currency <code>] [-age <bracket>] [-income <bracket>]
              [-risk <level>] [-goals <goals>] [-prefs <classes>] [-market <market>] [-shariah]
              [-id <id>] [-save=false] [-json]

  Selects a strategy for the profile, splits the budget across the preferred
  asset classes and picks concrete instruments from the catalog.

  The recommendation is saved in the history database under its id.

Usage Examples:
$ tgr recommend -budget 50000 -age 56-65 -risk low -goals retirement -prefs bonds,savings
$ tgr recommend -budget 183500 -currency AED -prefs real-estate,gold -market uae -shariah
`
}

func (c *recommendCmd) SetFlags(f *flag.FlagSet) {
	c.profileFlags.SetFlags(f)
	f.StringVar(&c.id, "id", "", "Identifier of the recommendation, a timestamp by default.")
	f.BoolVar(&c.save, "save", true, "Save the recommendation in the history database.")
	f.BoolVar(&c.json, "json", false, "Print the recommendation as JSON.")
}

func (c *recommendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	catalog, err := cfg.catalog(ctx, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	rates := cfg.rates(log)
	base, catalog, err := prepare(ctx, cfg, rates, p, catalog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	engine, err := allocation.NewEngine(cfg.Engine, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.id == "" {
		c.id = time.Now().UTC().Format("20060102-150405")
	}
	r, err := engine.Recommend(c.id, base, catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the recommendation: %v\n", err)
		return subcommands.ExitFailure
	}
	// reported in the currency of the budget.
	r, err = allocation.ConvertResult(ctx, rates, r, p.Currency())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.save {
		s, err := cfg.store(log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
			return subcommands.ExitFailure
		}
		defer s.Close()
		if err := s.Save(ctx, p, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving recommendation %q: %v\n", r.ID, err)
			return subcommands.ExitFailure
		}
	}

	if c.json {
		fmt.Println(r.String())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.Recommendation(r, cfg.language()))
	return subcommands.ExitSuccess
}
