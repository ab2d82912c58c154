package orderbook

// Entry is an immutable resting order at a venue. Two entries are ordered by
// Price alone; Amount and Venue never participate in ordering, so entries
// that tie on price are free to coexist in either relative order.
type Entry struct {
	Price  Decimal
	Amount Decimal
	Venue  Venue
}
