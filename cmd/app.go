// Package cmd implements the CLI application to compute FIFO capital gains.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/taxfolio/taxfolio"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "trades")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var tradesFile = flag.String("trades-file", "data/normalized_trades.csv", "Path to the canonical trades file (CSV format)")
var configFile = flag.String("config", "config/config.yaml", "Path to the tax constants file (YAML format)")

// LoadConfig reads the app configuration file, falling back to defaults
// when it does not exist.
func LoadConfig() (taxfolio.Config, error) {
	return taxfolio.LoadConfig(*configFile)
}

// DecodeTrades reads the canonical trades from the app trades file.
func DecodeTrades(currency string) ([]taxfolio.Trade, error) {
	f, err := os.Open(*tradesFile)
	if err != nil {
		return nil, fmt.Errorf("could not open trades file %q: %w", *tradesFile, err)
	}
	defer f.Close()
	return taxfolio.DecodeTrades(f, currency)
}

// printWarnings surfaces report warnings on stderr, keeping stdout for
// the report itself.
func printWarnings(warnings []taxfolio.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
}
