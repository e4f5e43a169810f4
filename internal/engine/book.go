package engine

import (
	"log/slog"
	"slices"

	"github.com/google/btree"

	"advisorbook/internal/domain"
)

// Book owns the full ordered collection of order records and answers
// point-in-time and historical queries over it. Records are kept sorted
// ascending by timestamp, with all records sharing a timestamp
// contiguous; Insert preserves this after every mutation.
//
// The book holds no notion of "now" — the current-time cursor belongs
// to the caller and is passed into each time-relative query.
type Book struct {
	orders []domain.OrderRecord
	// times indexes the distinct timestamps in the dataset, ordered
	// ascending. Backs EarliestTime/NextTime without rescanning orders.
	times     *btree.BTreeG[string]
	simOrigin string
	logger    *slog.Logger
}

// NewBook constructs a Book from an already-loaded, non-empty record
// sequence sorted ascending by timestamp. The book copies the sequence
// and becomes the sole owner of its record storage; queries hand out
// copies. simOrigin is the origin tag of the distinguished simulated
// participant, used by Match to attribute sales.
//
// Returns domain.ErrEmptyDataset when orders is empty. The book does
// not sort on construction — ordering is the loader's contract.
func NewBook(orders []domain.OrderRecord, simOrigin string, logger *slog.Logger) (*Book, error) {
	if len(orders) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	if logger == nil {
		logger = slog.Default()
	}

	const degree = 32
	times := btree.NewG[string](degree, func(a, b string) bool { return a < b })
	for _, rec := range orders {
		times.ReplaceOrInsert(rec.Timestamp)
	}

	return &Book{
		orders:    slices.Clone(orders),
		times:     times,
		simOrigin: simOrigin,
		logger:    logger,
	}, nil
}

// Products returns the distinct products across the whole dataset,
// sorted ascending.
func (b *Book) Products() []string {
	seen := make(map[string]bool)
	for _, rec := range b.orders {
		seen[rec.Product] = true
	}

	products := make([]string, 0, len(seen))
	for p := range seen {
		products = append(products, p)
	}
	slices.Sort(products)
	return products
}

// ProductsAt returns the distinct products among records exactly
// matching the timestamp and side, sorted ascending.
func (b *Book) ProductsAt(timestamp string, side domain.Side) []string {
	seen := make(map[string]bool)
	for _, rec := range b.orders {
		if rec.Timestamp == timestamp && rec.Side == side {
			seen[rec.Product] = true
		}
	}

	products := make([]string, 0, len(seen))
	for p := range seen {
		products = append(products, p)
	}
	slices.Sort(products)
	return products
}

// HasProductAt reports whether any record matches the product,
// timestamp and side exactly.
func (b *Book) HasProductAt(product, timestamp string, side domain.Side) bool {
	return slices.Contains(b.ProductsAt(timestamp, side), product)
}

// OrdersAt returns copies of all records exactly matching the side,
// product and timestamp, in their original order.
func (b *Book) OrdersAt(side domain.Side, product, timestamp string) []domain.OrderRecord {
	var sub []domain.OrderRecord
	for _, rec := range b.orders {
		if rec.Side == side && rec.Product == product && rec.Timestamp == timestamp {
			sub = append(sub, rec)
		}
	}
	return sub
}

// EarliestTime returns the timestamp of the first record in the dataset.
func (b *Book) EarliestTime() string {
	return b.orders[0].Timestamp
}

// NextTime returns the first distinct timestamp strictly greater than
// the given one. When none exists it wraps around to the earliest
// timestamp, so a caller's time cursor cycles through the dataset
// indefinitely.
func (b *Book) NextTime(timestamp string) string {
	var next string
	found := false
	b.times.AscendGreaterOrEqual(timestamp, func(ts string) bool {
		if ts == timestamp {
			return true
		}
		next = ts
		found = true
		return false
	})
	if !found {
		next, _ = b.times.Min()
	}
	return next
}

// Insert appends a record and re-sorts the collection by timestamp,
// keeping insertion order for ties. O(n log n) per call; inserts are
// rare manual order injections, never a hot loop.
func (b *Book) Insert(record domain.OrderRecord) {
	b.orders = append(b.orders, record)
	slices.SortStableFunc(b.orders, domain.CompareByTimestamp)
	b.times.ReplaceOrInsert(record.Timestamp)
}

// LowPrice returns the minimum price among the given records.
// Returns domain.ErrEmptyInput when records is empty — pre-checking
// existence is the caller's responsibility.
func LowPrice(records []domain.OrderRecord) (float64, error) {
	if len(records) == 0 {
		return 0, domain.ErrEmptyInput
	}
	min := records[0].Price
	for _, rec := range records {
		if rec.Price < min {
			min = rec.Price
		}
	}
	return min, nil
}

// HighPrice returns the maximum price among the given records.
// Returns domain.ErrEmptyInput when records is empty.
func HighPrice(records []domain.OrderRecord) (float64, error) {
	if len(records) == 0 {
		return 0, domain.ErrEmptyInput
	}
	max := records[0].Price
	for _, rec := range records {
		if rec.Price > max {
			max = rec.Price
		}
	}
	return max, nil
}
