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

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	year int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "chargeable gain and tax due for a tax year" }
func (*summaryCmd) Usage() string {
	return `cgt summary [-year <year>]

  Computes the total realized gain for the tax year, applies the
  personal exemption and the tax rate from the configuration, and
  displays the resulting tax due.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", taxfolio.Today().Year(), "Tax year to report on")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.SummaryMarkdown(taxfolio.NewTaxSummary(report, cfg)))
	return subcommands.ExitSuccess
}
