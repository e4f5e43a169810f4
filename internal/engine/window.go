package engine

import "advisorbook/internal/domain"

// windowScan walks the record collection backward from the end,
// yielding every record that matches the product and side within a
// backward time window of currentTime. It is the single traversal
// primitive behind ExistsInWindow, AverageInWindow and Predict.
//
// The scan only becomes active once a record with currentTime is seen;
// because the collection is sorted ascending, scanning backward visits
// currentTime before any earlier timestamp. If currentTime never
// occurs, the scan reaches the start without activating and yields
// nothing. While active, each new distinct timestamp beyond the first
// counts as one passed timestamp; the scan stops once more than window
// timestamps have been passed, so exactly currentTime plus window prior
// distinct timestamps are consumed.
//
// visit returns false to stop the scan early.
func (b *Book) windowScan(product, currentTime string, window int, side domain.Side, visit func(domain.OrderRecord) bool) {
	active := false
	passed := 0
	var lastSeen string

	for i := len(b.orders) - 1; i >= 0; i-- {
		rec := b.orders[i]

		if !active {
			if rec.Timestamp != currentTime {
				continue
			}
			active = true
			lastSeen = rec.Timestamp
		}

		if rec.Timestamp != lastSeen {
			passed++
			if passed > window {
				return
			}
			lastSeen = rec.Timestamp
		}

		if rec.Side == side && rec.Product == product {
			if !visit(rec) {
				return
			}
		}
	}
}

// ExistsInWindow reports whether at least one record for the product
// and side falls within the backward window of currentTime. Callers use
// it to validate average and prediction requests before computing them.
func (b *Book) ExistsInWindow(product, currentTime string, window int, side domain.Side) bool {
	found := false
	b.windowScan(product, currentTime, window, side, func(domain.OrderRecord) bool {
		found = true
		return false
	})
	return found
}

// AverageInWindow returns the arithmetic mean of all prices for the
// product and side within the backward window of currentTime. Returns
// domain.ErrNoData when the window contains no qualifying records —
// callers are expected to check ExistsInWindow first.
func (b *Book) AverageInWindow(product, currentTime string, window int, side domain.Side) (float64, error) {
	var sum float64
	count := 0
	b.windowScan(product, currentTime, window, side, func(rec domain.OrderRecord) bool {
		sum += rec.Price
		count++
		return true
	})
	if count == 0 {
		return 0, domain.ErrNoData
	}
	return sum / float64(count), nil
}

// pricesInWindow collects the prices of all records for the product and
// side within the backward window of currentTime, in scan order.
func (b *Book) pricesInWindow(product, currentTime string, window int, side domain.Side) []float64 {
	var prices []float64
	b.windowScan(product, currentTime, window, side, func(rec domain.OrderRecord) bool {
		prices = append(prices, rec.Price)
		return true
	})
	return prices
}
