package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gainside/cgt/renderer"
	"github.com/google/subcommands"
)

type poolCmd struct{}

func (*poolCmd) Name() string     { return "pool" }
func (*poolCmd) Synopsis() string { return "section 104 pool history per asset" }
func (*poolCmd) Usage() string {
	return `cgt pool

  Shows the Section 104 pool snapshot chain of every asset: one line per
  acquisition or disposal, ending with the current position.
`
}

func (c *poolCmd) SetFlags(f *flag.FlagSet) {}

func (c *poolCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, _, err := process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PoolsMarkdown(holdings))
	return subcommands.ExitSuccess
}
