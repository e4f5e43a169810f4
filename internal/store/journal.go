package store

import (
	"sync"

	"github.com/google/uuid"

	"advisorbook/internal/domain"
)

// Sale is a journaled record of one executed trade between a bid and
// an ask.
type Sale struct {
	SaleID    string
	Product   string
	Timestamp string
	Side      domain.Side
	Price     float64
	Amount    float64
	Origin    string
}

// SaleJournal is an in-memory record of executed sales, keyed by
// product. Sales are append-only and chronological in production order.
type SaleJournal struct {
	mu    sync.RWMutex
	sales map[string][]*Sale // product → sales
}

// NewSaleJournal creates an empty SaleJournal.
func NewSaleJournal() *SaleJournal {
	return &SaleJournal{
		sales: make(map[string][]*Sale),
	}
}

// Record assigns the sale record an ID and appends it to its product's
// journal, returning the journaled entry.
func (j *SaleJournal) Record(rec domain.OrderRecord) *Sale {
	sale := &Sale{
		SaleID:    uuid.New().String(),
		Product:   rec.Product,
		Timestamp: rec.Timestamp,
		Side:      rec.Side,
		Price:     rec.Price,
		Amount:    rec.Amount,
		Origin:    rec.Origin,
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.sales[rec.Product] = append(j.sales[rec.Product], sale)
	return sale
}

// ByProduct returns all journaled sales for a product in production
// order. Returns an empty slice if none exist.
func (j *SaleJournal) ByProduct(product string) []*Sale {
	j.mu.RLock()
	defer j.mu.RUnlock()

	sales := j.sales[product]
	if sales == nil {
		return []*Sale{}
	}

	// Return a copy to avoid callers mutating the internal slice.
	result := make([]*Sale, len(sales))
	copy(result, sales)
	return result
}
