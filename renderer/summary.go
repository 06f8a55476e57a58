package renderer

import (
	"fmt"
	"strings"

	"github.com/taxfolio/taxfolio"
)

// SummaryMarkdown renders the chargeable-gain summary to markdown.
func SummaryMarkdown(s *taxfolio.TaxSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax Summary %d\n\n", s.Year)
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Realized Gain | %s |\n", s.TotalGain.SignedString())
	fmt.Fprintf(&b, "| Personal Exemption | %s |\n", s.Exemption)
	fmt.Fprintf(&b, "| Chargeable Gain | %s |\n", s.ChargeableGain)
	fmt.Fprintf(&b, "| Tax Rate | %s |\n", s.TaxRate)
	fmt.Fprintf(&b, "| **Tax Due** | **%s** |\n", s.TaxDue)

	return b.String()
}
