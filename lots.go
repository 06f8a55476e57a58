package taxfolio

import "github.com/taxfolio/taxfolio/date"

// buyLot is a single purchase of an asset, tracked until fully sold.
//
// remaining is the only mutable field. totalNet and original never
// change: the cost per unit of a lot is always the original total cost
// over the original quantity, no matter how much of the lot has been
// consumed since.
type buyLot struct {
	date      date.Date
	remaining Quantity
	original  Quantity
	totalNet  Money
}

// costPerUnit returns the acquisition cost of one unit of this lot.
func (l *buyLot) costPerUnit() Money { return l.totalNet.Div(l.original) }

// lotQueue holds the open purchase lots of one asset in FIFO order:
// appended at the back on purchase, consumed from the front on sale.
type lotQueue struct {
	lots []*buyLot
}

// pushBuy appends a new open lot at the back of the queue.
func (q *lotQueue) pushBuy(day date.Date, quantity Quantity, totalNet Money) {
	q.lots = append(q.lots, &buyLot{
		date:      day,
		remaining: quantity,
		original:  quantity,
		totalNet:  totalNet,
	})
}

// front returns the oldest still-open lot, or nil if the queue is empty.
func (q *lotQueue) front() *buyLot {
	if len(q.lots) == 0 {
		return nil
	}
	return q.lots[0]
}

// consumeFront reduces the front lot's remaining quantity by amount.
// The caller guarantees amount <= front().remaining. A lot is dequeued
// exactly when its remaining quantity reaches zero.
func (q *lotQueue) consumeFront(amount Quantity) {
	lot := q.lots[0]
	lot.remaining = lot.remaining.Sub(amount)
	if lot.remaining.IsZero() {
		q.lots = q.lots[1:]
	}
}

// openQuantity returns the total still-open quantity across all lots.
func (q *lotQueue) openQuantity() Quantity {
	total := Q(0)
	for _, lot := range q.lots {
		total = total.Add(lot.remaining)
	}
	return total
}

// lotBook maps an asset to its lot queue. Queues are created lazily on
// first reference and live only for one matching run.
type lotBook map[string]*lotQueue

func (b lotBook) queue(asset string) *lotQueue {
	q, ok := b[asset]
	if !ok {
		q = &lotQueue{}
		b[asset] = q
	}
	return q
}
