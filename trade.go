package taxfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/taxfolio/taxfolio/date"
)

// TradeType identifies the side of a trade.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// ParseTradeType parses a string into a TradeType.
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(s) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type: %q", s)
	}
}

// Trade is one canonical trade record, as produced by normalization.
//
// TotalNet is the amount that matters for gain computation: the total
// cost paid including fees for a buy, the proceeds net of fees for a
// sell.
type Trade struct {
	Date       date.Date
	Asset      string
	Type       TradeType
	Quantity   Quantity
	Price      Money
	Fee        Money
	TotalGross Money
	TotalNet   Money
	TxID       string
	Note       string
}

// stableSortTrades sorts trades by date ascending. The sort is stable:
// trades on the same day keep their input relative order, which is the
// tie-break that decides which lot is oldest for co-dated buy/sell pairs.
func stableSortTrades(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date.Before(trades[j].Date)
	})
}

// tradeColumns is the column order of the canonical trade CSV.
var tradeColumns = []string{
	"date", "asset", "type", "quantity", "price", "fee",
	"total_gross", "total_net", "txid", "note",
}

// row returns the trade in canonical CSV column order, every decimal
// field kept exact.
func (t Trade) row() []string {
	return []string{
		t.Date.String(),
		t.Asset,
		string(t.Type),
		t.Quantity.String(),
		t.Price.Text(),
		t.Fee.Text(),
		t.TotalGross.Text(),
		t.TotalNet.Text(),
		t.TxID,
		t.Note,
	}
}

// EncodeTrades writes trades to w in the canonical CSV form.
func EncodeTrades(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeColumns); err != nil {
		return fmt.Errorf("could not write trades header: %w", err)
	}
	for _, t := range trades {
		if err := cw.Write(t.row()); err != nil {
			return fmt.Errorf("could not write trade %s: %w", t.TxID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTrades reads canonical trades from w. Any field that cannot be
// parsed into its semantic type aborts the decode: a silently
// substituted default is worse than a failure here.
func DecodeTrades(r io.Reader, currency string) ([]Trade, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read trades: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range tradeColumns[:8] { // note and txid are optional in older files
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("trades file is missing column %q", name)
		}
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	trades := make([]Trade, 0, len(records)-1)
	for n, row := range records[1:] {
		line := n + 2 // 1-based, after the header row
		day, err := date.Parse(field(row, "date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		typ, err := ParseTradeType(field(row, "type"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		qty, err := ParseQuantity(field(row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		price, err := ParseMoney(field(row, "price"), currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		fee, err := ParseMoney(field(row, "fee"), currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		gross, err := ParseMoney(field(row, "total_gross"), currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		net, err := ParseMoney(field(row, "total_net"), currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		asset := field(row, "asset")
		if asset == "" {
			return nil, fmt.Errorf("line %d: asset is missing", line)
		}
		trades = append(trades, Trade{
			Date:       day,
			Asset:      asset,
			Type:       typ,
			Quantity:   qty,
			Price:      price,
			Fee:        fee,
			TotalGross: gross,
			TotalNet:   net,
			TxID:       field(row, "txid"),
			Note:       field(row, "note"),
		})
	}
	return trades, nil
}
