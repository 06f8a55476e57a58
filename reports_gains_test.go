package taxfolio

import (
	"testing"
	"time"
)

func TestCalculateGains_SingleLotSale(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 10, 1000),
		sell(day(2025, time.January, 1), "btc", 10, 1500),
	}

	report := CalculateGains(trades, 2025)

	if len(report.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", report.Warnings)
	}
	if len(report.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(report.Results))
	}
	r := report.Results[0]
	if len(r.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1", len(r.Details))
	}
	d := r.Details[0]
	if !d.CostBasis.Equal(EUR(1000)) {
		t.Errorf("CostBasis = %s, want 1000", d.CostBasis.Text())
	}
	if !d.Gain.Equal(EUR(500)) {
		t.Errorf("Gain = %s, want 500", d.Gain.Text())
	}
	if !r.TotalGain.Equal(EUR(500)) {
		t.Errorf("TotalGain = %s, want 500", r.TotalGain.Text())
	}
	if !report.TotalGain.Equal(EUR(500)) {
		t.Errorf("report.TotalGain = %s, want 500", report.TotalGain.Text())
	}
}

func TestCalculateGains_MultiLotSale(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 5, 500),
		buy(day(2024, time.February, 1), "btc", 5, 600),
		sell(day(2024, time.March, 1), "btc", 8, 960),
	}

	report := CalculateGains(trades, 2024)

	if len(report.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(report.Results))
	}
	r := report.Results[0]
	if len(r.Details) != 2 {
		t.Fatalf("len(Details) = %d, want 2", len(r.Details))
	}

	// First detail fully consumes the January lot: 5 units at 100.
	first := r.Details[0]
	if got, want := first.BuyDate.String(), "2024-01-01"; got != want {
		t.Errorf("Details[0].BuyDate = %s, want %s", got, want)
	}
	if !first.UsedQuantity.Equal(Q(5)) {
		t.Errorf("Details[0].UsedQuantity = %s, want 5", first.UsedQuantity)
	}
	if !first.CostPerUnit.Equal(EUR(100)) {
		t.Errorf("Details[0].CostPerUnit = %s, want 100", first.CostPerUnit.Text())
	}
	if !first.CostBasis.Equal(EUR(500)) {
		t.Errorf("Details[0].CostBasis = %s, want 500", first.CostBasis.Text())
	}
	// Prorated proceeds: 960 × 5⁄8 = 600, so the gain is 100.
	if !first.Gain.Equal(EUR(100)) {
		t.Errorf("Details[0].Gain = %s, want 100", first.Gain.Text())
	}

	// Second detail takes 3 of the February lot: cost per unit 120.
	second := r.Details[1]
	if got, want := second.BuyDate.String(), "2024-02-01"; got != want {
		t.Errorf("Details[1].BuyDate = %s, want %s", got, want)
	}
	if !second.UsedQuantity.Equal(Q(3)) {
		t.Errorf("Details[1].UsedQuantity = %s, want 3", second.UsedQuantity)
	}
	if !second.CostPerUnit.Equal(EUR(120)) {
		t.Errorf("Details[1].CostPerUnit = %s, want 120", second.CostPerUnit.Text())
	}
	if !second.CostBasis.Equal(EUR(360)) {
		t.Errorf("Details[1].CostBasis = %s, want 360", second.CostBasis.Text())
	}
	// Prorated proceeds: 960 × 3⁄8 = 360, exactly the cost basis.
	if !second.Gain.IsZero() {
		t.Errorf("Details[1].Gain = %s, want 0", second.Gain.Text())
	}

	// Per-detail gains sum to the gain of the whole sale: 960 − 860.
	if !r.TotalGain.Equal(EUR(100)) {
		t.Errorf("TotalGain = %s, want 100", r.TotalGain.Text())
	}
}

func TestCalculateGains_Shortfall(t *testing.T) {
	trades := []Trade{
		sell(day(2025, time.June, 1), "btc", 10, 1500),
	}

	report := CalculateGains(trades, 2025)

	if len(report.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(report.Results))
	}
	r := report.Results[0]
	if len(r.Details) != 0 {
		t.Errorf("len(Details) = %d, want 0", len(r.Details))
	}
	if !r.TotalGain.IsZero() {
		t.Errorf("TotalGain = %s, want 0", r.TotalGain.Text())
	}

	if len(report.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one shortfall", report.Warnings)
	}
	w := report.Warnings[0]
	if w.Kind != WarnShortfall {
		t.Errorf("Warnings[0].Kind = %s, want %s", w.Kind, WarnShortfall)
	}
	if w.Asset != "btc" {
		t.Errorf("Warnings[0].Asset = %s, want btc", w.Asset)
	}
	if !w.Unmatched.Equal(Q(10)) {
		t.Errorf("Warnings[0].Unmatched = %s, want 10", w.Unmatched)
	}
}

func TestCalculateGains_PartialShortfall(t *testing.T) {
	trades := []Trade{
		buy(day(2025, time.January, 1), "btc", 4, 400),
		sell(day(2025, time.June, 1), "btc", 10, 1500),
	}

	report := CalculateGains(trades, 2025)

	r := report.Results[0]
	if len(r.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1 (matched with whatever lots exist)", len(r.Details))
	}
	if !r.Details[0].UsedQuantity.Equal(Q(4)) {
		t.Errorf("UsedQuantity = %s, want 4", r.Details[0].UsedQuantity)
	}
	if len(report.Warnings) != 1 || !report.Warnings[0].Unmatched.Equal(Q(6)) {
		t.Errorf("Warnings = %v, want one shortfall of 6", report.Warnings)
	}
}

func TestCalculateGains_NoSalesInYear(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 10, 1000),
		buy(day(2025, time.February, 1), "eth", 10, 2000),
	}

	report := CalculateGains(trades, 2025)

	if len(report.Results) != 0 {
		t.Fatalf("len(Results) = %d, want 0", len(report.Results))
	}
	if report.Results == nil {
		t.Error("Results is nil, want an empty non-nil result set")
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != WarnNoSales {
		t.Errorf("Warnings = %v, want a single no-sales notice", report.Warnings)
	}
}

// An out-of-year sale emits no result but still consumes lots, so the
// in-year sale that follows must match the later lot, not the oldest.
func TestCalculateGains_OutOfYearSaleConsumesLots(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 10, 1000),
		sell(day(2024, time.June, 1), "btc", 5, 600),
		sell(day(2025, time.June, 1), "btc", 5, 900),
	}

	report := CalculateGains(trades, 2025)

	if len(report.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1 (2024 sale must not be reported)", len(report.Results))
	}
	r := report.Results[0]
	if got, want := r.Date.String(), "2025-06-01"; got != want {
		t.Errorf("Results[0].Date = %s, want %s", got, want)
	}
	if len(r.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1", len(r.Details))
	}
	// The 2024 sale already took 5 of the lot: basis is 1000 × 5⁄10.
	if !r.Details[0].CostBasis.Equal(EUR(500)) {
		t.Errorf("CostBasis = %s, want 500", r.Details[0].CostBasis.Text())
	}
	if !r.TotalGain.Equal(EUR(400)) {
		t.Errorf("TotalGain = %s, want 400", r.TotalGain.Text())
	}
}

func TestCalculateGains_FIFOAcrossAssets(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 1, 100),
		buy(day(2024, time.January, 2), "eth", 1, 10),
		buy(day(2024, time.February, 1), "btc", 1, 200),
		sell(day(2024, time.March, 1), "btc", 1, 300),
	}

	report := CalculateGains(trades, 2024)

	r := report.Results[0]
	// The eth lot in between must not disturb btc's FIFO order.
	if got, want := r.Details[0].BuyDate.String(), "2024-01-01"; got != want {
		t.Errorf("consumed lot date = %s, want %s", got, want)
	}
	if !r.TotalGain.Equal(EUR(200)) {
		t.Errorf("TotalGain = %s, want 200", r.TotalGain.Text())
	}
}

// Trades arrive unsorted; the engine must order them by date before
// matching, or the sale would find an empty queue.
func TestCalculateGains_SortsTradesByDate(t *testing.T) {
	trades := []Trade{
		sell(day(2025, time.June, 1), "btc", 10, 1500),
		buy(day(2024, time.January, 1), "btc", 10, 1000),
	}

	report := CalculateGains(trades, 2025)

	if len(report.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none (buy predates sell)", report.Warnings)
	}
	if !report.TotalGain.Equal(EUR(500)) {
		t.Errorf("TotalGain = %s, want 500", report.TotalGain.Text())
	}
}

// Same-date trades keep their input order: the buy listed first is
// consumed by the co-dated sell.
func TestCalculateGains_SameDateTieBreak(t *testing.T) {
	trades := []Trade{
		buy(day(2025, time.June, 1), "btc", 10, 1000),
		sell(day(2025, time.June, 1), "btc", 10, 1100),
	}

	report := CalculateGains(trades, 2025)

	if len(report.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", report.Warnings)
	}
	if !report.TotalGain.Equal(EUR(100)) {
		t.Errorf("TotalGain = %s, want 100", report.TotalGain.Text())
	}
}

// A lot whose per-unit cost has no finite decimal expansion must still
// reconstruct its exact total cost when fully consumed.
func TestCalculateGains_ExactBasisOnFullConsumption(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 3, 1000),
		sell(day(2024, time.June, 1), "btc", 3, 1200),
	}

	report := CalculateGains(trades, 2024)

	d := report.Results[0].Details[0]
	if !d.CostBasis.Equal(EUR(1000)) {
		t.Errorf("CostBasis = %s, want exactly 1000", d.CostBasis.Text())
	}
	if !d.Gain.Equal(EUR(200)) {
		t.Errorf("Gain = %s, want exactly 200", d.Gain.Text())
	}
}

// Repeated partial consumption computes every basis from the lot's
// immutable original values, so truncation never compounds.
func TestCalculateGains_RepeatedPartialConsumption(t *testing.T) {
	trades := []Trade{
		buy(day(2024, time.January, 1), "btc", 9, 3000),
		sell(day(2024, time.March, 1), "btc", 3, 1100),
		sell(day(2024, time.April, 1), "btc", 3, 1100),
		sell(day(2024, time.May, 1), "btc", 3, 1100),
	}

	report := CalculateGains(trades, 2024)

	if len(report.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(report.Results))
	}
	for i, r := range report.Results {
		d := r.Details[0]
		if !d.CostBasis.Equal(EUR(1000)) {
			t.Errorf("Results[%d].CostBasis = %s, want exactly 1000", i, d.CostBasis.Text())
		}
	}
	if !report.TotalGain.Equal(EUR(300)) {
		t.Errorf("TotalGain = %s, want 300", report.TotalGain.Text())
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Kind: WarnShortfall, Asset: "btc", Date: day(2025, time.June, 1), Unmatched: Q(6)}
	if got := w.String(); got != `unmatched sell quantity for asset "btc" on 2025-06-01: 6 remaining` {
		t.Errorf("unexpected shortfall message: %s", got)
	}
	if got := (Warning{Kind: WarnNoSales}).String(); got != "no sell trade found in the target tax year" {
		t.Errorf("unexpected no-sales message: %s", got)
	}
}
