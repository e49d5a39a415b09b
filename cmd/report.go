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

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "capital gains tax report per tax year" }
func (*reportCmd) Usage() string {
	return `cgt report [-year <tax_year>]

  Computes the net taxable income and the tax to pay for each tax year
  found in the ledger, after share matching and Section 104 pooling.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "", "Restrict the report to one tax year, e.g. 2020/2021")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, cfg, err := process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rates, err := cfg.TaxRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	summaries, err := cgt.Summarize(holdings, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.year != "" {
		summaries = filterYear(summaries, c.year)
		if len(summaries) == 0 {
			fmt.Fprintf(os.Stderr, "No disposals in tax year %s\n", c.year)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.SummaryMarkdown(summaries))
	return subcommands.ExitSuccess
}

// filterYear keeps only the summaries of one tax year.
func filterYear(summaries []cgt.YearSummary, year string) []cgt.YearSummary {
	var filtered []cgt.YearSummary
	for _, s := range summaries {
		if s.TaxYear == year {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
