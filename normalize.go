package taxfolio

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxfolio/taxfolio/date"
)

// Raw input CSV contract. Anything beyond these columns is a formatting
// error the user must fix, not something to guess around.
var (
	requiredFields  = []string{"Date", "Type", "Asset", "Quantity", "Price"}
	expectedColumns = []string{"Date", "Type", "Asset", "Quantity", "Price", "Fees", "Notes"}
)

// rawTrade is one row of the raw input CSV, keyed by header name.
type rawTrade struct {
	line   int // 1-based line number in the input file
	fields map[string]string
	extra  int // count of fields beyond the header, usually a stray comma
}

func (t rawTrade) get(name string) string { return strings.TrimSpace(t.fields[name]) }

// readRawTrades reads the raw input CSV. Structural CSV failures are
// fatal; field-level problems are left for CheckRawTrades to report.
func readRawTrades(r io.Reader) ([]rawTrade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field-count mismatches are reported per line instead

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read input CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]rawTrade, 0, len(records)-1)
	for n, record := range records[1:] {
		row := rawTrade{line: n + 2, fields: make(map[string]string, len(header))}
		for i, name := range header {
			if i < len(record) {
				row.fields[strings.TrimSpace(name)] = record[i]
			}
		}
		if len(record) > len(header) {
			row.extra = len(record) - len(header)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isValidNumber(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}

func isValidDate(s string) bool {
	_, err := date.Parse(s)
	return err == nil
}

// CheckRawTrades validates every row of the raw input and returns one
// message per faulty line. An empty report means the input is clean.
func CheckRawTrades(rows []rawTrade) []string {
	var report []string
	for _, t := range rows {
		var rowErrors []string

		if t.extra > 0 {
			rowErrors = append(rowErrors, "too many fields in this row (possible extra comma in a value e.g. 1,2 instead of 1.2)")
		}
		for name := range t.fields {
			found := false
			for _, want := range expectedColumns {
				if name == want {
					found = true
					break
				}
			}
			if !found {
				rowErrors = append(rowErrors, fmt.Sprintf("unexpected column: %q, check headers for accuracy", name))
			}
		}
		for _, field := range requiredFields {
			if t.get(field) == "" {
				rowErrors = append(rowErrors, fmt.Sprintf("missing required field: %s", field))
			}
		}
		if _, err := ParseTradeType(strings.ToLower(t.get("Type"))); t.get("Type") != "" && err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("invalid trade type: %q, valid types are buy and sell", t.get("Type")))
		}
		for _, field := range []string{"Quantity", "Price"} {
			if v := t.get(field); v != "" && !isValidNumber(v) {
				rowErrors = append(rowErrors, fmt.Sprintf("invalid value for %s: %q (e.g. 123.45 or 123)", field, v))
			}
		}
		if fee := t.get("Fees"); fee != "" && !isValidNumber(fee) {
			rowErrors = append(rowErrors, fmt.Sprintf("invalid value for Fees: %q (e.g. 123.45 or 123)", fee))
		}
		if d := t.get("Date"); d != "" && !isValidDate(d) {
			rowErrors = append(rowErrors, fmt.Sprintf("invalid date format for Date: %q (e.g. 2025-01-01)", d))
		}

		if len(rowErrors) > 0 {
			report = append(report, fmt.Sprintf("line %d: %s", t.line, strings.Join(rowErrors, "; ")))
		}
	}
	return report
}

// NewTxID derives a deterministic transaction id from the content of a
// trade, so the same record imported twice is recognized as a duplicate.
func NewTxID(day, typ, asset, quantity, price string) string {
	base := fmt.Sprintf("%s_%s_%s_%s_%s", day, typ, asset, quantity, price)
	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])[:10]
}

// NormalizeTrades turns clean raw rows into canonical trades, skipping
// rows whose txid is already present in existing. New txids are added
// to existing as they are produced, so duplicates within the input are
// skipped too.
func NormalizeTrades(rows []rawTrade, existing map[string]bool, currency string) ([]Trade, error) {
	if report := CheckRawTrades(rows); len(report) > 0 {
		return nil, fmt.Errorf("errors found in the input CSV:\n%s", strings.Join(report, "\n"))
	}

	var trades []Trade
	for _, t := range rows {
		typ := strings.ToLower(t.get("Type"))
		asset := strings.ToLower(t.get("Asset"))

		txid := NewTxID(t.get("Date"), typ, asset, t.get("Quantity"), t.get("Price"))
		if existing[txid] {
			continue
		}

		day, err := date.Parse(t.get("Date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		tradeType, err := ParseTradeType(typ)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		quantity, err := ParseQuantity(t.get("Quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		price, err := ParseMoney(t.get("Price"), currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		fee := M(0, currency)
		if v := t.get("Fees"); v != "" {
			if fee, err = ParseMoney(v, currency); err != nil {
				return nil, fmt.Errorf("line %d: %w", t.line, err)
			}
		}

		gross := price.Mul(quantity)
		// Fees always work against the trader: they increase the cost
		// of a buy and reduce the proceeds of a sell.
		net := gross.Add(fee)
		if tradeType == Sell {
			net = gross.Sub(fee)
		}

		trades = append(trades, Trade{
			Date:       day,
			Asset:      asset,
			Type:       tradeType,
			Quantity:   quantity,
			Price:      price,
			Fee:        fee,
			TotalGross: gross,
			TotalNet:   net,
			TxID:       txid,
			Note:       t.get("Notes"),
		})
		existing[txid] = true
	}
	return trades, nil
}

// ReadTxIDs collects the txids already present in the canonical trades
// file. A missing file simply means no trade was imported yet.
func ReadTxIDs(path string) (map[string]bool, error) {
	txids := make(map[string]bool)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return txids, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	trades, err := DecodeTrades(f, "")
	if err != nil {
		return nil, fmt.Errorf("could not read existing trades from %q: %w", path, err)
	}
	for _, t := range trades {
		if t.TxID != "" {
			txids[t.TxID] = true
		}
	}
	return txids, nil
}

// ImportTrades normalizes the raw trades from inputPath and appends the
// records not already known to the canonical trades file at storePath.
// It returns the number of trades added.
func ImportTrades(inputPath, storePath, currency string) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("could not open input file: %w", err)
	}
	defer in.Close()

	rows, err := readRawTrades(in)
	if err != nil {
		return 0, err
	}

	existing, err := ReadTxIDs(storePath)
	if err != nil {
		return 0, err
	}

	trades, err := NormalizeTrades(rows, existing, currency)
	if err != nil {
		return 0, err
	}
	if len(trades) == 0 {
		return 0, nil
	}

	if err := appendTrades(storePath, trades); err != nil {
		return 0, err
	}
	return len(trades), nil
}

// appendTrades appends canonical trades to the store file, writing the
// header only when creating it.
func appendTrades(path string, trades []Trade) error {
	_, statErr := os.Stat(path)
	newFile := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open trades file %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if newFile {
		if err := cw.Write(tradeColumns); err != nil {
			return fmt.Errorf("could not write trades header: %w", err)
		}
	}
	for _, t := range trades {
		if err := cw.Write(t.row()); err != nil {
			return fmt.Errorf("could not write trade %s: %w", t.TxID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
