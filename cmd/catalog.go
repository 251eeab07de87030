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

type catalogCmd struct {
	category string
	market   string
	shariah  bool
	export   bool
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list and validate the instrument catalog" }
func (*catalogCmd) Usage() string {
	return `tgr catalog [-category <class>] [-market <market>] [-shariah] [-export]

  Loads and validates the catalog, then lists its instruments. With -export
  the catalog is written to the standard output in its canonical JSONL form,
  ready to be edited and passed back with -catalog.

Usage Examples:
$ tgr catalog -category bonds
$ tgr catalog -export > catalog.jsonl
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "Only list one asset class.")
	f.StringVar(&c.market, "market", "", "Only list instruments offered in this market.")
	f.BoolVar(&c.shariah, "shariah", false, "Only list Shariah compliant instruments.")
	f.BoolVar(&c.export, "export", false, "Write the catalog as canonical JSONL.")
}

func (c *catalogCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := Logger()
	catalog, err := cfg.catalog(ctx, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	var preds []allocation.Predicate
	if c.category != "" {
		cat, err := allocation.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		preds = append(preds, func(in allocation.Instrument) bool { return in.Category == cat })
	}
	if c.market != "" {
		preds = append(preds, allocation.InMarket(c.market))
	}
	if c.shariah {
		preds = append(preds, allocation.ShariahCompliant())
	}
	catalog = catalog.Filter(preds...)

	if c.export {
		if err := allocation.EncodeCatalog(os.Stdout, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.Catalog(catalog, cfg.language()))
	return subcommands.ExitSuccess
}
