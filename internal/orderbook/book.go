// Package orderbook implements the cross-venue merge engine: decimal-exact
// per-venue snapshots go in, a depth-bounded, price-ordered Summary comes
// out. The Book is owned exclusively by whichever goroutine calls AddOrders
// (the event loop); it carries no internal locking.
package orderbook

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/shopspring/decimal"
)

func decimalComparator(a, b interface{}) int {
	return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
}

// Book is the merge engine's owned state: one ordered multiset per side,
// keyed by price, each bucket holding every entry tied at that price across
// venues, plus the last computed Summary.
type Book struct {
	asks    *treemap.Map
	bids    *treemap.Map
	depth   int
	summary Summary
}

// NewBook creates an empty book publishing up to depth entries per side.
func NewBook(depth int) *Book {
	return &Book{
		asks:    treemap.NewWith(decimalComparator),
		bids:    treemap.NewWith(decimalComparator),
		depth:   depth,
		summary: emptySummary(),
	}
}

// AddOrders replaces every prior entry from update.Venue on both sides with
// update's own entries, then recomputes the Summary using update's price
// precision for the spread.
func (b *Book) AddOrders(update *Update) {
	removeVenue(b.asks, update.Venue)
	removeVenue(b.bids, update.Venue)
	insertEntries(b.asks, update.Asks)
	insertEntries(b.bids, update.Bids)
	b.summary = b.recompute(update.PricePrec)
}

// Summary returns the cached summary computed by the most recent AddOrders.
func (b *Book) Summary() Summary {
	return b.summary
}

func removeVenue(m *treemap.Map, venue Venue) {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		bucket := v.([]Entry)

		kept := bucket[:0]
		changed := false
		for _, e := range bucket {
			if e.Venue == venue {
				changed = true
				continue
			}
			kept = append(kept, e)
		}
		if !changed {
			continue
		}
		if len(kept) == 0 {
			m.Remove(k)
		} else {
			m.Put(k, kept)
		}
	}
}

func insertEntries(m *treemap.Map, entries []Entry) {
	for _, e := range entries {
		key := e.Price.Raw()
		if v, ok := m.Get(key); ok {
			bucket := v.([]Entry)
			m.Put(key, append(bucket, e))
		} else {
			m.Put(key, []Entry{e})
		}
	}
}

func (b *Book) recompute(pricePrec uint64) Summary {
	asks := collect(b.asks, b.depth, true)
	bids := collect(b.bids, b.depth, false)

	return Summary{
		Spread: spread(asks, bids, pricePrec),
		Asks:   entriesToLevels(asks),
		Bids:   entriesToLevels(bids),
	}
}

// collect gathers up to depth entries in price order: ascending for asks,
// descending for bids, mirroring treemap's forward/reverse iteration.
func collect(m *treemap.Map, depth int, ascending bool) []Entry {
	result := make([]Entry, 0, depth)
	it := m.Iterator()

	if ascending {
		for it.Next() {
			result = appendBucket(result, it.Value().([]Entry), depth)
			if len(result) >= depth {
				return result
			}
		}
		return result
	}

	for it.End(); it.Prev(); {
		result = appendBucket(result, it.Value().([]Entry), depth)
		if len(result) >= depth {
			return result
		}
	}
	return result
}

func appendBucket(result []Entry, bucket []Entry, depth int) []Entry {
	for _, e := range bucket {
		if len(result) >= depth {
			return result
		}
		result = append(result, e)
	}
	return result
}
