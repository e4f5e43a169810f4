package domain

import (
	"cmp"
	"strings"
)

// Side indicates whether an order is a sell offer (ask) or a buy offer (bid).
type Side string

const (
	SideAsk Side = "ask"
	SideBid Side = "bid"

	// Sale sides mark records produced by matching. They never appear in
	// raw input.
	SideAskSale Side = "ask_sale"
	SideBidSale Side = "bid_sale"

	// SideUnknown is a sentinel for unparseable side text, not an error.
	// Queries treat it as matching nothing.
	SideUnknown Side = "unknown"
)

// SideFromString parses "ask" or "bid" (case-sensitive) into a Side.
// Any other text yields SideUnknown so callers can validate user input
// without an error path.
func SideFromString(text string) Side {
	switch text {
	case "ask":
		return SideAsk
	case "bid":
		return SideBid
	}
	return SideUnknown
}

// String renders a Side for display. Sale sides render as the side that
// originated them.
func (s Side) String() string {
	switch s {
	case SideAskSale:
		return "ask"
	case SideBidSale:
		return "bid"
	}
	return string(s)
}

// Opposite returns the other trading side. Sale and unknown sides have
// no opposite and map to SideUnknown.
func (s Side) Opposite() Side {
	switch s {
	case SideAsk:
		return SideBid
	case SideBid:
		return SideAsk
	}
	return SideUnknown
}

// OrderRecord is a single timestamped order in the dataset. Records are
// immutable after parsing; only matching mutates Amount, and then only
// on its own working copies.
type OrderRecord struct {
	// Timestamp is an opaque, lexically-comparable time step token. The
	// engine never parses it as calendar time.
	Timestamp string
	Product   string
	Side      Side
	Price     float64
	Amount    float64
	// Origin tags the order's source. Matching uses it to decide which
	// participant a produced sale belongs to. Empty for dataset orders.
	Origin string
}

// CompareByTimestamp orders records by timestamp ascending.
func CompareByTimestamp(a, b OrderRecord) int {
	return strings.Compare(a.Timestamp, b.Timestamp)
}

// CompareByPriceAsc orders records by price ascending (cheapest ask first).
func CompareByPriceAsc(a, b OrderRecord) int {
	return cmp.Compare(a.Price, b.Price)
}

// CompareByPriceDesc orders records by price descending (highest bid first).
func CompareByPriceDesc(a, b OrderRecord) int {
	return cmp.Compare(b.Price, a.Price)
}
