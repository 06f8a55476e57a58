package taxfolio

import (
	"fmt"
	"slices"

	"github.com/taxfolio/taxfolio/date"
)

// WarningKind identifies a recoverable condition met during matching.
type WarningKind string

const (
	// WarnShortfall is emitted when a sale's quantity exceeds the total
	// open lot quantity for its asset. The sale is matched against
	// whatever lots exist and processing continues.
	WarnShortfall WarningKind = "shortfall"
	// WarnNoSales is emitted when no sell trade at all falls within the
	// target tax year. The report is empty but valid.
	WarnNoSales WarningKind = "no-sales"
)

// Warning reports a recoverable condition. Warnings are returned on the
// report, never swallowed; rendering them is the caller's concern.
type Warning struct {
	Kind      WarningKind
	Asset     string    // asset concerned, for shortfalls
	Date      date.Date // sale date, for shortfalls
	Unmatched Quantity  // sale quantity left unmatched, for shortfalls
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnShortfall:
		return fmt.Sprintf("unmatched sell quantity for asset %q on %s: %s remaining", w.Asset, w.Date, w.Unmatched)
	case WarnNoSales:
		return "no sell trade found in the target tax year"
	default:
		return string(w.Kind)
	}
}

// MatchDetail records the consumption of (part of) one purchase lot by
// one sale. Immutable once created.
type MatchDetail struct {
	BuyDate      date.Date
	UsedQuantity Quantity
	CostPerUnit  Money // total net cost of the lot over its original quantity
	CostBasis    Money // UsedQuantity's share of the lot's total net cost
	Gain         Money // prorated proceeds minus CostBasis; positive is profit
}

// SoldLotResult is the auditable breakdown of one sale: which purchase
// lots funded it, in consumption order (oldest lot first), and at what
// gain. Immutable once emitted.
type SoldLotResult struct {
	Date         date.Date
	Asset        string
	SoldQuantity Quantity
	TotalGain    Money
	Details      []MatchDetail
}

// GainsReport contains the results of a FIFO capital gains calculation
// for one tax year.
type GainsReport struct {
	Year     int
	Results  []SoldLotResult
	Warnings []Warning

	// TotalGain aggregates the gains of all results, for downstream
	// summary computation.
	TotalGain Money
}

// CalculateGains computes realized capital gains for the given trades
// using FIFO lot matching, reporting the sales of the given tax year.
//
// Trades are processed in stable date order. Every buy opens a lot, and
// every sell consumes lots, whatever its year: an out-of-year sale must
// still move the queues so that in-year sales see the correct oldest
// lot. Only sales dated within the target year produce a result.
func CalculateGains(trades []Trade, year int) *GainsReport {
	report := &GainsReport{Year: year, Results: []SoldLotResult{}}

	inYear := date.YearRange(year)
	if !slices.ContainsFunc(trades, func(t Trade) bool {
		return t.Type == Sell && inYear.Contains(t.Date)
	}) {
		report.Warnings = append(report.Warnings, Warning{Kind: WarnNoSales})
	}

	sorted := slices.Clone(trades)
	stableSortTrades(sorted)

	book := lotBook{}
	for _, t := range sorted {
		switch t.Type {
		case Buy:
			book.queue(t.Asset).pushBuy(t.Date, t.Quantity, t.TotalNet)
		case Sell:
			result, warning := matchSell(book.queue(t.Asset), t)
			if warning != nil {
				report.Warnings = append(report.Warnings, *warning)
			}
			if inYear.Contains(t.Date) {
				report.Results = append(report.Results, result)
				report.TotalGain = report.TotalGain.Add(result.TotalGain)
			}
		}
	}
	return report
}

// matchSell consumes open lots from the front of the queue until the
// sale is fully matched or the queue is exhausted.
func matchSell(q *lotQueue, t Trade) (SoldLotResult, *Warning) {
	result := SoldLotResult{
		Date:         t.Date,
		Asset:        t.Asset,
		SoldQuantity: t.Quantity,
	}

	toMatch := t.Quantity
	for toMatch.IsPositive() {
		lot := q.front()
		if lot == nil {
			break
		}
		matchQty := toMatch.Min(lot.remaining)

		// Multiply before dividing: a fully consumed lot must
		// reconstruct its original total net cost exactly, even when
		// the per-unit quotient alone has no exact decimal form.
		costBasis := lot.totalNet.Mul(matchQty).Div(lot.original)
		// Proceeds are prorated to the matched quantity so that the
		// gains of a multi-lot sale sum to the gain of the whole sale.
		proceeds := t.TotalNet.Mul(matchQty).Div(t.Quantity)
		gain := proceeds.Sub(costBasis)

		result.Details = append(result.Details, MatchDetail{
			BuyDate:      lot.date,
			UsedQuantity: matchQty,
			CostPerUnit:  lot.costPerUnit(),
			CostBasis:    costBasis,
			Gain:         gain,
		})
		result.TotalGain = result.TotalGain.Add(gain)

		q.consumeFront(matchQty)
		toMatch = toMatch.Sub(matchQty)
	}

	if toMatch.IsPositive() {
		return result, &Warning{
			Kind:      WarnShortfall,
			Asset:     t.Asset,
			Date:      t.Date,
			Unmatched: toMatch,
		}
	}
	return result, nil
}
