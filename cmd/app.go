// Package cmd implements the CLI application computing UK capital gains tax.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/gainside/cgt"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&recordsCmd{}, "reports")
	c.Register(&poolCmd{}, "reports")
	c.Register(&estimateCmd{}, "reports")
	c.Register(&ledgerCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.txt", "Path to the ledger file containing transactions")
var configFile = flag.String("config-file", "cgt.toml", "Path to the TOML configuration file")

// LoadLedger reads every transaction from the app ledger file.
func LoadLedger() ([]cgt.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return cgt.DecodeLedger(f)
}

// LoadConfig reads the app configuration file, falling back to the built-in
// UK defaults when the file does not exist.
func LoadConfig() (cgt.Config, error) {
	return cgt.LoadConfig(*configFile)
}

// process runs the whole pipeline from the app ledger and configuration.
func process() ([]cgt.Holding, cgt.Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, cgt.Config{}, err
	}
	txs, err := LoadLedger()
	if err != nil {
		return nil, cgt.Config{}, err
	}
	holdings, err := cgt.Process(txs, cfg.TaxPeriod())
	if err != nil {
		return nil, cgt.Config{}, err
	}
	return holdings, cfg, nil
}
