package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/tharagrowth/allocation"
)

// offline makes the commands use the static rates and no history.
func offline(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDB, NoDB)
	t.Setenv(EnvRatesURL, "http://127.0.0.1:1/%s")
	t.Setenv(EnvGoldURL, "http://127.0.0.1:1/gold")
	t.Setenv("TGR_CACHE_DIR", t.TempDir())
	withConfig(t, filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestRecommend_BudgetCurrency(t *testing.T) {
	offline(t)

	c := &recommendCmd{}
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	args := []string{"-budget", "183500", "-currency", "AED", "-prefs", "bonds,gold,savings", "-id", "aed", "-json"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}

	var status subcommands.ExitStatus
	out := captureStdout(t, func() { status = c.Execute(context.Background(), fs) })
	if status != subcommands.ExitSuccess {
		t.Fatalf("recommend %s exit status = %v, output %q", strings.Join(args, " "), status, out)
	}

	var r allocation.PortfolioResult
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("recommend output is not a result: %v\n%s", err, out)
	}
	if !r.Budget.Equal(allocation.M(183500, "AED")) {
		t.Errorf("budget = %v, want 183500 AED", r.Budget)
	}
	if r.TotalAllocated.Currency() != "AED" || r.Remaining.Currency() != "AED" {
		t.Errorf("totals in %s and %s, want AED", r.TotalAllocated.Currency(), r.Remaining.Currency())
	}
	if len(r.Items) == 0 {
		t.Fatal("recommend bought nothing")
	}
	for _, it := range r.Items {
		if it.Amount.Currency() != "AED" {
			t.Errorf("item %s amount in %s, want AED", it.Instrument.ID, it.Amount.Currency())
		}
	}
}
