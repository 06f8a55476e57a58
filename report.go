package taxfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// reportColumns is the column order of the gains report CSV.
var reportColumns = []string{"Date", "Asset", "Sold Quantity", "Total Gain", "Buys Used"}

// EncodeReport writes the gains report to w as CSV, one row per sale.
// Decimal fields keep their exact representation; this is the reporting
// boundary and the first place any rounding may happen, but the CSV
// chooses not to round at all.
func EncodeReport(w io.Writer, report *GainsReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportColumns); err != nil {
		return fmt.Errorf("could not write report header: %w", err)
	}
	for _, result := range report.Results {
		used := make([]string, 0, len(result.Details))
		for _, d := range result.Details {
			used = append(used, fmt.Sprintf("Date: %s, Used Qty: %s, Cost/Unit: %s, Cost Basis: %s, Gain: %s",
				d.BuyDate, d.UsedQuantity, d.CostPerUnit.Text(), d.CostBasis.Text(), d.Gain.Text()))
		}
		row := []string{
			result.Date.String(),
			result.Asset,
			result.SoldQuantity.String(),
			result.TotalGain.Text(),
			strings.Join(used, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write report row for %s %s: %w", result.Asset, result.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
