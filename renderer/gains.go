// Package renderer turns computed reports into markdown suitable for
// terminal rendering.
package renderer

import (
	"fmt"
	"strings"

	"github.com/taxfolio/taxfolio"
)

// GainsMarkdown renders the FIFO gains report to a markdown string.
func GainsMarkdown(report *taxfolio.GainsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report %d\n\n", report.Year)
	fmt.Fprintf(&b, "Method: fifo\n\n")

	for _, w := range report.Warnings {
		fmt.Fprintf(&b, "> WARNING: %s\n\n", w)
	}

	if len(report.Results) == 0 {
		fmt.Fprint(&b, "No reportable sales.\n")
		return b.String()
	}

	fmt.Fprint(&b, "## Sales\n\n")
	fmt.Fprintln(&b, "| Date | Asset | Sold Quantity | Total Gain |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, r := range report.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			r.Date, r.Asset, r.SoldQuantity, r.TotalGain.SignedString())
	}
	fmt.Fprintf(&b, "| **%s** | | | **%s** |\n\n", "Total", report.TotalGain.SignedString())

	fmt.Fprint(&b, "## Lots Consumed\n\n")
	for _, r := range report.Results {
		fmt.Fprintf(&b, "### %s %s, sold %s\n\n", r.Date, r.Asset, r.SoldQuantity)
		fmt.Fprintln(&b, "| Buy Date | Used Qty | Cost/Unit | Cost Basis | Gain |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
		for _, d := range r.Details {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				d.BuyDate, d.UsedQuantity, d.CostPerUnit, d.CostBasis, d.Gain.SignedString())
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
