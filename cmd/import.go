package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/taxfolio/taxfolio"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	input string
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "validates raw trades and imports them into the canonical trades file"
}
func (*importCmd) Usage() string {
	return `cgt import [-i <input.csv>]

  Validates the raw trades CSV (Date,Type,Asset,Quantity,Price,Fees,Notes),
  reports every formatting error with its line number, and appends the
  trades not already imported to the canonical trades file. Duplicates
  are recognized by a transaction id derived from the trade content.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "input/my_trades.csv", "Path to the raw trades CSV")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	added, err := taxfolio.ImportTrades(c.input, *tradesFile, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing trades: %v\n", err)
		return subcommands.ExitFailure
	}
	if added == 0 {
		fmt.Println("No new trades found.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Added %d new trades to %s\n", added, *tradesFile)
	return subcommands.ExitSuccess
}
