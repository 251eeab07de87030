package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tharagrowth/allocation/renderer"
)

type historyCmd struct {
	id    string
	limit int
	json  bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list saved recommendations or show one" }
func (*historyCmd) Usage() string {
	return `tgr history [-n <count>] [-id <id> [-json]]

  Lists the saved recommendations, most recent first. With -id, shows that
  recommendation again.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Show the recommendation with this id.")
	f.IntVar(&c.limit, "n", 20, "Maximum number of recommendations to list, 0 for all.")
	f.BoolVar(&c.json, "json", false, "Print the recommendation as JSON.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := cfg.store(Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.id != "" {
		rec, err := s.Get(ctx, c.id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if c.json {
			fmt.Println(rec.Result.String())
			return subcommands.ExitSuccess
		}
		printMarkdown(renderer.Recommendation(rec.Result, cfg.language()))
		return subcommands.ExitSuccess
	}

	list, err := s.List(ctx, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing history: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.History(list, cfg.language()))
	return subcommands.ExitSuccess
}
