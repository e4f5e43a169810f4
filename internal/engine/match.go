package engine

import (
	"log/slog"
	"slices"

	"advisorbook/internal/domain"
)

// Match runs the asks of the product at exactly timestamp against its
// bids and returns the sales produced, in production order. The book
// itself is never modified: matching works on fresh copies of the
// filtered ask and bid subsets, and the caller decides whether produced
// sales are recorded anywhere.
//
// Policy: asks are taken cheapest first, bids highest first, and a bid
// matches an ask when it is willing to pay at least the ask's price.
// The trade clears at the ask's posted price. Partial fills mutate the
// working copies' remaining amounts in place so a large bid can keep
// filling subsequent asks, and a large ask keeps scanning further bids.
func (b *Book) Match(product, timestamp string) []domain.OrderRecord {
	asks := b.OrdersAt(domain.SideAsk, product, timestamp)
	bids := b.OrdersAt(domain.SideBid, product, timestamp)

	var sales []domain.OrderRecord

	if len(asks) == 0 || len(bids) == 0 {
		b.logger.Debug("no crossing possible",
			slog.String("product", product),
			slog.String("timestamp", timestamp),
			slog.Int("asks", len(asks)),
			slog.Int("bids", len(bids)),
		)
		return sales
	}

	slices.SortFunc(asks, domain.CompareByPriceAsc)
	slices.SortFunc(bids, domain.CompareByPriceDesc)

	b.logger.Debug("matching",
		slog.String("product", product),
		slog.String("timestamp", timestamp),
		slog.Float64("min_ask", asks[0].Price),
		slog.Float64("max_ask", asks[len(asks)-1].Price),
		slog.Float64("max_bid", bids[0].Price),
		slog.Float64("min_bid", bids[len(bids)-1].Price),
	)

	for i := range asks {
		ask := &asks[i]
		for j := range bids {
			bid := &bids[j]

			if bid.Price < ask.Price {
				continue
			}

			sale := domain.OrderRecord{
				Timestamp: timestamp,
				Product:   product,
				Side:      domain.SideAskSale,
				Price:     ask.Price,
			}
			// Attribute the sale to the simulated participant when
			// either side belongs to it. The bid-side overwrite is
			// applied first so the ask-side one wins when both sides
			// are the participant's.
			if bid.Origin == b.simOrigin {
				sale.Origin = b.simOrigin
				sale.Side = domain.SideBidSale
			}
			if ask.Origin == b.simOrigin {
				sale.Origin = b.simOrigin
				sale.Side = domain.SideAskSale
			}

			if bid.Amount == ask.Amount {
				// Bid exactly clears the ask; neither side has
				// anything left, move to the next ask.
				sale.Amount = ask.Amount
				sales = append(sales, sale)
				bid.Amount = 0
				break
			}

			if bid.Amount > ask.Amount {
				// Ask fully filled; the bid keeps its remainder to
				// fill subsequent asks.
				sale.Amount = ask.Amount
				sales = append(sales, sale)
				bid.Amount -= ask.Amount
				break
			}

			if bid.Amount < ask.Amount && bid.Amount > 0 {
				// Bid exhausted by a partial fill; the ask's
				// remainder keeps scanning further bids.
				sale.Amount = bid.Amount
				sales = append(sales, sale)
				ask.Amount -= bid.Amount
				bid.Amount = 0
				continue
			}

			// Zeroed bids fall through and are skipped.
		}
	}

	return sales
}
