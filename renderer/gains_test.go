package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/taxfolio/taxfolio"
	"github.com/taxfolio/taxfolio/date"
)

func testReport() *taxfolio.GainsReport {
	trades := []taxfolio.Trade{
		{Date: date.New(2024, time.January, 1), Asset: "btc", Type: taxfolio.Buy,
			Quantity: taxfolio.Q(5), TotalNet: taxfolio.M(500, "EUR")},
		{Date: date.New(2024, time.February, 1), Asset: "btc", Type: taxfolio.Buy,
			Quantity: taxfolio.Q(5), TotalNet: taxfolio.M(600, "EUR")},
		{Date: date.New(2024, time.March, 1), Asset: "btc", Type: taxfolio.Sell,
			Quantity: taxfolio.Q(8), TotalNet: taxfolio.M(960, "EUR")},
	}
	return taxfolio.CalculateGains(trades, 2024)
}

func TestGainsMarkdown(t *testing.T) {
	md := GainsMarkdown(testReport())

	for _, want := range []string{
		"# Capital Gains Report 2024",
		"Method: fifo",
		"## Sales",
		"| 2024-03-01 | btc | 8 |",
		"## Lots Consumed",
		"### 2024-03-01 btc, sold 8",
		"| 2024-01-01 | 5 |",
		"| 2024-02-01 | 3 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q:\n%s", want, md)
		}
	}
}

func TestGainsMarkdown_Warnings(t *testing.T) {
	report := taxfolio.CalculateGains(nil, 2024)
	md := GainsMarkdown(report)

	if !strings.Contains(md, "> WARNING: no sell trade found in the target tax year") {
		t.Errorf("markdown is missing the no-sales warning:\n%s", md)
	}
	if !strings.Contains(md, "No reportable sales.") {
		t.Errorf("markdown is missing the empty-report note:\n%s", md)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	report := testReport()
	summary := taxfolio.NewTaxSummary(report, taxfolio.DefaultConfig())
	md := SummaryMarkdown(summary)

	for _, want := range []string{
		"# Tax Summary 2024",
		"Total Realized Gain",
		"Personal Exemption",
		"Chargeable Gain",
		"Tax Due",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q:\n%s", want, md)
		}
	}
}
