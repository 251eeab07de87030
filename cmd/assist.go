package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/agent"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "chat with an AI advisor about your recommendations"
}
func (*assistCmd) Usage() string {
	return `tgr assist [question]

  Starts an interactive session with an AI advisor that can read the saved
  recommendations, the catalog and the documentation. It needs a Gemini API
  key in GEMINI_API_KEY (or GOOGLE_API_KEY).

Usage Examples:
$ tgr assist why so much in bonds?
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := Logger()

	s, err := cfg.store(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	catalog, err := cfg.catalog(ctx, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	engine, err := allocation.NewEngine(cfg.Engine, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	tools := &agent.Tools{Engine: engine, Catalog: catalog, Store: s, Lang: cfg.language()}
	a := agent.New(os.Stdout, os.Stdin, log, agent.NewAnalyst(tools, log), agent.NewMarketWatcher(log))
	a.Print = func(_ io.Writer, md string) { printMarkdown(md) }

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
