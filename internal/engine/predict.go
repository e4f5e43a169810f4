package engine

import (
	"slices"

	"advisorbook/internal/domain"
)

// PredictOp selects which end of the price distribution a prediction
// estimates.
type PredictOp string

const (
	PredictMin PredictOp = "min"
	PredictMax PredictOp = "max"
)

// Predict estimates the next minimum or maximum price for the product
// on the given side, from the prices posted on the opposite side over
// the backward window of currentTime: a predicted ask ceiling is
// informed by demand-side bid pressure, not by other asks, and vice
// versa.
//
// The estimator sorts the gathered prices ascending and returns the
// mean of the lowest 10% (op = min, a crude p10) or the highest 10%
// (op = max, p90). The 10% count truncates, so windows with fewer than
// ten prices leave an empty sample; that degenerates to
// domain.ErrNoData rather than being rounded up to one price. Callers
// should check ExistsInWindow on the opposite side first.
func (b *Book) Predict(product, currentTime string, window int, side domain.Side, op PredictOp) (float64, error) {
	prices := b.pricesInWindow(product, currentTime, window, side.Opposite())
	slices.Sort(prices)

	take := int(0.1 * float64(len(prices)))
	if take == 0 {
		return 0, domain.ErrNoData
	}

	var sum float64
	if op == PredictMin {
		for _, p := range prices[:take] {
			sum += p
		}
	} else {
		for _, p := range prices[len(prices)-take:] {
			sum += p
		}
	}
	return sum / float64(take), nil
}
