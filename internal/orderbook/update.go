package orderbook

import "fmt"

// Update is a venue-tagged order book snapshot. It is built once by a venue
// adapter, consumed exactly once by the event loop, then dropped.
type Update struct {
	Venue      Venue
	Bids       []Entry
	Asks       []Entry
	PricePrec  uint64
	AmountPrec uint64
}

// NewUpdate creates an empty snapshot for venue, truncating every entry
// added to it to pricePrec/amountPrec significant digits.
func NewUpdate(venue Venue, pricePrec, amountPrec uint64) *Update {
	return &Update{Venue: venue, PricePrec: pricePrec, AmountPrec: amountPrec}
}

// AddBid parses and appends a bid entry. An unparseable decimal is a fatal
// venue-contract error: it is returned, never silently dropped.
func (u *Update) AddBid(priceStr, amountStr string) error {
	e, err := u.buildEntry(priceStr, amountStr)
	if err != nil {
		return err
	}
	u.Bids = append(u.Bids, e)
	return nil
}

// AddAsk parses and appends an ask entry. See AddBid for failure semantics.
func (u *Update) AddAsk(priceStr, amountStr string) error {
	e, err := u.buildEntry(priceStr, amountStr)
	if err != nil {
		return err
	}
	u.Asks = append(u.Asks, e)
	return nil
}

func (u *Update) buildEntry(priceStr, amountStr string) (Entry, error) {
	price, err := NewDecimalFromString(priceStr, u.PricePrec)
	if err != nil {
		return Entry{}, fmt.Errorf("orderbook: invalid price %q: %w", priceStr, err)
	}
	amount, err := NewDecimalFromString(amountStr, u.AmountPrec)
	if err != nil {
		return Entry{}, fmt.Errorf("orderbook: invalid amount %q: %w", amountStr, err)
	}
	return Entry{Price: price, Amount: amount, Venue: u.Venue}, nil
}
