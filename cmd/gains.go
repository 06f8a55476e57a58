package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/taxfolio/taxfolio"
	"github.com/taxfolio/taxfolio/renderer"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	year       int
	outputFile string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized capital gains for a tax year, FIFO matched" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-year <year>] [-o <report.csv>]

  Computes realized capital gains for the given tax year by matching
  each sale against the oldest open purchase lots of the same asset,
  and displays the per-sale breakdown. With -o the report is also
  written as CSV.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", taxfolio.Today().Year(), "Tax year to report on")
	f.StringVar(&c.outputFile, "o", "", "Write the report as CSV to this file")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	trades, err := DecodeTrades(cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trades: %v\n", err)
		return subcommands.ExitFailure
	}

	report := taxfolio.CalculateGains(trades, c.year)
	printWarnings(report.Warnings)

	if c.outputFile != "" {
		out, err := os.Create(c.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating report file %q: %v\n", c.outputFile, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := taxfolio.EncodeReport(out, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report file %q: %v\n", c.outputFile, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
