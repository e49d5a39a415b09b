package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gainside/cgt/renderer"
	"github.com/google/subcommands"
)

type recordsCmd struct{}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "realized gains and losses per asset" }
func (*recordsCmd) Usage() string {
	return `cgt records

  Lists every realized gain and loss record, grouped per asset, with the
  tax year each one is attributed to.
`
}

func (c *recordsCmd) SetFlags(f *flag.FlagSet) {}

func (c *recordsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, _, err := process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RecordsMarkdown(holdings))
	return subcommands.ExitSuccess
}
