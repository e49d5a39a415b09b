package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/gainside/cgt"
	"github.com/gainside/cgt/renderer"
	"github.com/google/subcommands"
)

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	matched bool
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "validates and lists the ledger transactions" }
func (*ledgerCmd) Usage() string {
	return `cgt ledger [-matched]

  Parses and validates the ledger file and lists its transactions in date
  order. With -matched, lists the sequence left after the same-day and
  30-day matching passes instead, the one the pools are built from.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.matched, "matched", false, "List the matched sequence instead of the raw ledger")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	title := "Ledger"
	if c.matched {
		title = "Matched Ledger"
		groups := cgt.GroupByAsset(txs)
		assets := slices.SortedFunc(maps.Keys(groups), cgt.Asset.Compare)
		txs = nil
		for _, asset := range assets {
			txs = append(txs, cgt.Match(groups[asset])...)
		}
	} else {
		cgt.SortByDate(txs)
	}

	printMarkdown(renderer.TransactionsMarkdown(title, txs))
	return subcommands.ExitSuccess
}
