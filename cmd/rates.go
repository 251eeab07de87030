package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tharagrowth/allocation"
)

type ratesCmd struct {
	from   string
	to     string
	amount string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "convert an amount between currencies" }
func (*ratesCmd) Usage() string {
	return `tgr rates -from <code> [-to <code>] [-amount <value>]

  Converts an amount with the live exchange rates. Rates are kept for an hour
  and cached on disk for the day. Offline, a static table of the main pairs
  answers instead.

Usage Examples:
$ tgr rates -from AED -to USD -amount 183500
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Currency to convert from.")
	f.StringVar(&c.to, "to", "", "Currency to convert to, the base currency by default.")
	f.StringVar(&c.amount, "amount", "1", "Amount to convert.")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.to == "" {
		c.to = cfg.BaseCurrency
	}
	from, to := strings.ToUpper(c.from), strings.ToUpper(c.to)
	for _, code := range []string{from, to} {
		if err := allocation.ValidateCurrency(code); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	amount, err := allocation.ParseMoney(c.amount, from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	provider := cfg.rates(Logger())
	rate, err := provider.Rate(ctx, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting rate %s/%s: %v\n", from, to, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s = %s (rate %s)\n", amount, amount.In(to, rate), rate)
	return subcommands.ExitSuccess
}
