package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gainside/cgt"
	"github.com/gainside/cgt/renderer"
	"github.com/google/subcommands"
)

// estimateCmd holds the flags for the 'estimate' subcommand.
type estimateCmd struct {
	apiKey string
}

func (*estimateCmd) Name() string     { return "estimate" }
func (*estimateCmd) Synopsis() string { return "unrealized positions at current market prices" }
func (*estimateCmd) Usage() string {
	return `cgt estimate [-key <alphavantage_key>]

  Quotes every open position and estimates the gain or loss and the tax
  that disposing of the whole pool today would realize. Quotes come from
  alphavantage.co; the API key is read from the configuration file unless
  given on the command line.
`
}

func (c *estimateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKey, "key", "", "AlphaVantage API key, overrides the configuration file")
}

func (c *estimateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, cfg, err := process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	key := c.apiKey
	if key == "" {
		key = cfg.Quotes.AlphaVantageKey
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: no AlphaVantage API key, set -key or quotes.alphavantage_key in the configuration")
		return subcommands.ExitUsageError
	}

	rates, err := cfg.TaxRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	estimates, err := cgt.EstimatePositions(holdings, cgt.NewAlphaVantage(key), cfg.TaxPeriod(), rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.EstimateMarkdown(estimates))
	return subcommands.ExitSuccess
}
