package service

import (
	"advisorbook/internal/domain"
	"advisorbook/internal/engine"
	"advisorbook/internal/store"
)

// Advisor orchestrates queries against the order book on behalf of an
// interactive session. It owns the current-time cursor and performs all
// user-input validation (side keywords, operators, window sizes) so the
// engine only ever receives pre-validated requests.
type Advisor struct {
	book          *engine.Book
	journal       *store.SaleJournal
	simOrigin     string
	predictWindow int
	currentTime   string
}

// NewAdvisor creates an Advisor with its cursor at the dataset's
// earliest timestamp.
func NewAdvisor(book *engine.Book, journal *store.SaleJournal, simOrigin string, predictWindow int) *Advisor {
	return &Advisor{
		book:          book,
		journal:       journal,
		simOrigin:     simOrigin,
		predictWindow: predictWindow,
		currentTime:   book.EarliestTime(),
	}
}

// Products returns the distinct products in the dataset.
func (a *Advisor) Products() []string {
	return a.book.Products()
}

// CurrentTime returns the cursor's current timestamp.
func (a *Advisor) CurrentTime() string {
	return a.currentTime
}

// Step advances the cursor to the next timestamp, wrapping around to
// the earliest when the dataset end is reached, and returns the new
// current timestamp.
func (a *Advisor) Step() string {
	a.currentTime = a.book.NextTime(a.currentTime)
	return a.currentTime
}

// MinPrice returns the minimum price for the product and side at the
// current timestamp. Returns a ValidationError for an unrecognized
// side and domain.ErrProductNotFound when the product has no such
// orders at the cursor.
func (a *Advisor) MinPrice(product, sideText string) (float64, error) {
	side, err := a.parseSide(sideText)
	if err != nil {
		return 0, err
	}
	if !a.book.HasProductAt(product, a.currentTime, side) {
		return 0, domain.ErrProductNotFound
	}
	return engine.LowPrice(a.book.OrdersAt(side, product, a.currentTime))
}

// MaxPrice returns the maximum price for the product and side at the
// current timestamp, with the same validation as MinPrice.
func (a *Advisor) MaxPrice(product, sideText string) (float64, error) {
	side, err := a.parseSide(sideText)
	if err != nil {
		return 0, err
	}
	if !a.book.HasProductAt(product, a.currentTime, side) {
		return 0, domain.ErrProductNotFound
	}
	return engine.HighPrice(a.book.OrdersAt(side, product, a.currentTime))
}

// Average returns the mean price for the product and side over the
// current timestamp plus the given number of prior timestamps.
func (a *Advisor) Average(product, sideText string, window int) (float64, error) {
	side, err := a.parseSide(sideText)
	if err != nil {
		return 0, err
	}
	if window < 0 {
		return 0, &domain.ValidationError{Message: "timestamps must be >= 0"}
	}
	if !a.book.ExistsInWindow(product, a.currentTime, window, side) {
		return 0, domain.ErrProductNotFound
	}
	return a.book.AverageInWindow(product, a.currentTime, window, side)
}

// Predict estimates the next min or max price for the product on the
// given side. The estimate draws on the opposite side's prices over the
// configured prediction window, so the existence pre-check runs against
// that side.
func (a *Advisor) Predict(opText, product, sideText string) (float64, error) {
	var op engine.PredictOp
	switch opText {
	case "min":
		op = engine.PredictMin
	case "max":
		op = engine.PredictMax
	default:
		return 0, &domain.ValidationError{Message: "operator must be 'min' or 'max'"}
	}

	side, err := a.parseSide(sideText)
	if err != nil {
		return 0, err
	}

	if !a.book.ExistsInWindow(product, a.currentTime, a.predictWindow, side.Opposite()) {
		return 0, domain.ErrProductNotFound
	}
	return a.book.Predict(product, a.currentTime, a.predictWindow, side, op)
}

// PlaceOrder inserts a simulated order for the current timestamp,
// tagged with the simulated participant's origin, and returns the
// inserted record.
func (a *Advisor) PlaceOrder(sideText, product string, price, amount float64) (domain.OrderRecord, error) {
	side, err := a.parseSide(sideText)
	if err != nil {
		return domain.OrderRecord{}, err
	}
	if price < 0 {
		return domain.OrderRecord{}, &domain.ValidationError{Message: "price must be >= 0"}
	}
	if amount <= 0 {
		return domain.OrderRecord{}, &domain.ValidationError{Message: "amount must be > 0"}
	}

	rec := domain.OrderRecord{
		Timestamp: a.currentTime,
		Product:   product,
		Side:      side,
		Price:     price,
		Amount:    amount,
		Origin:    a.simOrigin,
	}
	a.book.Insert(rec)
	return rec, nil
}

// MatchAt runs matching for the product at the current timestamp,
// journals every produced sale, and returns the journaled entries in
// production order. An empty result means no crossing was possible.
// Sales are never inserted back into the book.
func (a *Advisor) MatchAt(product string) []*store.Sale {
	produced := a.book.Match(product, a.currentTime)

	sales := make([]*store.Sale, 0, len(produced))
	for _, rec := range produced {
		sales = append(sales, a.journal.Record(rec))
	}
	return sales
}

// SalesFor returns all journaled sales for the product.
func (a *Advisor) SalesFor(product string) []*store.Sale {
	return a.journal.ByProduct(product)
}

func (a *Advisor) parseSide(text string) (domain.Side, error) {
	side := domain.SideFromString(text)
	if side == domain.SideUnknown {
		return domain.SideUnknown, &domain.ValidationError{Message: "side must be 'ask' or 'bid'"}
	}
	return side, nil
}
