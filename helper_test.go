package taxfolio

import (
	"time"

	"github.com/taxfolio/taxfolio/date"
)

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day is a helper for tests to build dates tersely.
func day(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }

// buy and sell build canonical trades with only the fields the engine
// reads; price/fee/gross stay zero on purpose.
func buy(d date.Date, asset string, qty, totalNet float64) Trade {
	return Trade{Date: d, Asset: asset, Type: Buy, Quantity: Q(qty), TotalNet: EUR(totalNet)}
}

func sell(d date.Date, asset string, qty, totalNet float64) Trade {
	return Trade{Date: d, Asset: asset, Type: Sell, Quantity: Q(qty), TotalNet: EUR(totalNet)}
}
