package orderbook

// Level is a single published price level.
type Level struct {
	Exchange string  `json:"exchange"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
}

// Summary is the published, display-shaped cross-venue top of book. Asks are
// ascending by price, bids descending; float conversion is the only lossy
// step and is acceptable since Summary is a display artifact, not a ledger.
type Summary struct {
	Spread float64 `json:"spread"`
	Bids   []Level `json:"bids"`
	Asks   []Level `json:"asks"`
}

func emptySummary() Summary {
	return Summary{Bids: []Level{}, Asks: []Level{}}
}

func entriesToLevels(entries []Entry) []Level {
	levels := make([]Level, len(entries))
	for i, e := range entries {
		levels[i] = Level{
			Exchange: e.Venue.String(),
			Price:    e.Price.Float64(),
			Amount:   e.Amount.Float64(),
		}
	}
	return levels
}

// spread computes best_ask - best_bid, truncated to pricePrec significant
// digits and converted to float; best_ask alone (resp. -best_bid) when one
// side is empty; 0 when both sides are empty.
func spread(asks, bids []Entry, pricePrec uint64) float64 {
	switch {
	case len(asks) > 0 && len(bids) > 0:
		d := asks[0].Price.Sub(bids[0].Price).TruncateSignificant(pricePrec)
		return d.Float64()
	case len(asks) > 0:
		return asks[0].Price.Float64()
	case len(bids) > 0:
		return -bids[0].Price.Float64()
	default:
		return 0.0
	}
}
