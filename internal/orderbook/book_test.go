package orderbook

import "testing"

func mustUpdate(t *testing.T, venue Venue, pricePrec, amountPrec uint64, bids, asks [][2]string) *Update {
	t.Helper()
	u := NewUpdate(venue, pricePrec, amountPrec)
	for _, b := range bids {
		if err := u.AddBid(b[0], b[1]); err != nil {
			t.Fatalf("AddBid: %v", err)
		}
	}
	for _, a := range asks {
		if err := u.AddAsk(a[0], a[1]); err != nil {
			t.Fatalf("AddAsk: %v", err)
		}
	}
	return u
}

func approxEqual(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}

func TestBook_SpreadBothSides(t *testing.T) {
	b := NewBook(10)
	u := mustUpdate(t, VenueBinance, 5, 5, [][2]string{{"0.00551", "1234"}}, [][2]string{{"0.00555", "1234"}})
	b.AddOrders(u)
	s := b.Summary()

	if !approxEqual(s.Spread, 0.00004) {
		t.Errorf("spread = %v, want 0.00004", s.Spread)
	}
	if len(s.Asks) != 1 || s.Asks[0].Exchange != "binance" || !approxEqual(s.Asks[0].Price, 0.00555) {
		t.Errorf("asks = %+v", s.Asks)
	}
	if len(s.Bids) != 1 || s.Bids[0].Exchange != "binance" || !approxEqual(s.Bids[0].Price, 0.00551) {
		t.Errorf("bids = %+v", s.Bids)
	}
}

func TestBook_SpreadAsksOnly(t *testing.T) {
	b := NewBook(10)
	u := mustUpdate(t, VenueBinance, 5, 5, nil, [][2]string{{"0.00555", "1234"}})
	b.AddOrders(u)
	s := b.Summary()

	if !approxEqual(s.Spread, 0.00555) {
		t.Errorf("spread = %v, want 0.00555", s.Spread)
	}
	if len(s.Bids) != 0 {
		t.Errorf("bids = %+v, want empty", s.Bids)
	}
}

func TestBook_SpreadBidsOnly(t *testing.T) {
	b := NewBook(10)
	u := mustUpdate(t, VenueBinance, 5, 5, [][2]string{{"0.00555", "1234"}}, nil)
	b.AddOrders(u)
	s := b.Summary()

	if !approxEqual(s.Spread, -0.00555) {
		t.Errorf("spread = %v, want -0.00555", s.Spread)
	}
	if len(s.Asks) != 0 {
		t.Errorf("asks = %+v, want empty", s.Asks)
	}
}

func TestBook_SpreadBothEmpty(t *testing.T) {
	b := NewBook(10)
	if got := b.Summary().Spread; got != 0.0 {
		t.Errorf("spread = %v, want 0", got)
	}
}

func TestBook_BidOrderingDescending(t *testing.T) {
	b := NewBook(10)
	u := mustUpdate(t, VenueBinance, 5, 5, [][2]string{
		{"1", "1"}, {"3", "3"}, {"2", "2"}, {"6", "6"},
	}, nil)
	b.AddOrders(u)

	want := []float64{6, 3, 2, 1}
	s := b.Summary()
	if len(s.Bids) != len(want) {
		t.Fatalf("len(bids) = %d, want %d", len(s.Bids), len(want))
	}
	for i, w := range want {
		if !approxEqual(s.Bids[i].Price, w) {
			t.Errorf("bids[%d] = %v, want %v", i, s.Bids[i].Price, w)
		}
	}
}

func TestBook_AskOrderingAscending(t *testing.T) {
	b := NewBook(10)
	u := mustUpdate(t, VenueBinance, 5, 5, nil, [][2]string{
		{"1", "1"}, {"3", "3"}, {"2", "2"}, {"6", "6"},
	})
	b.AddOrders(u)

	want := []float64{1, 2, 3, 6}
	s := b.Summary()
	if len(s.Asks) != len(want) {
		t.Fatalf("len(asks) = %d, want %d", len(s.Asks), len(want))
	}
	for i, w := range want {
		if !approxEqual(s.Asks[i].Price, w) {
			t.Errorf("asks[%d] = %v, want %v", i, s.Asks[i].Price, w)
		}
	}
}

func TestBook_CrossVenueInterleaving(t *testing.T) {
	b := NewBook(10)
	u1 := mustUpdate(t, VenueBinance, 5, 5, nil, [][2]string{
		{"1", "1"}, {"3", "3"}, {"2", "2"}, {"6", "6"},
	})
	b.AddOrders(u1)

	u2 := mustUpdate(t, VenueBitstamp, 5, 5, nil, [][2]string{
		{"1.1", "1"}, {"3.1", "3"}, {"2.1", "2"}, {"6.1", "6"},
	})
	b.AddOrders(u2)

	wantPrices := []float64{1.0, 1.1, 2.0, 2.1, 3.0, 3.1, 6.0, 6.1}
	wantVenues := []string{"binance", "bitstamp", "binance", "bitstamp", "binance", "bitstamp", "binance", "bitstamp"}

	s := b.Summary()
	if len(s.Asks) != len(wantPrices) {
		t.Fatalf("len(asks) = %d, want %d: %+v", len(s.Asks), len(wantPrices), s.Asks)
	}
	for i := range wantPrices {
		if !approxEqual(s.Asks[i].Price, wantPrices[i]) {
			t.Errorf("asks[%d].Price = %v, want %v", i, s.Asks[i].Price, wantPrices[i])
		}
		if s.Asks[i].Exchange != wantVenues[i] {
			t.Errorf("asks[%d].Exchange = %v, want %v", i, s.Asks[i].Exchange, wantVenues[i])
		}
	}
}

// Builds on the cross-venue interleaving state, then replaces all of
// Bitstamp's asks with a single better-priced one; only that one entry
// should remain tagged bitstamp afterward.
func TestBook_VenueReplacement(t *testing.T) {
	b := NewBook(10)
	u1 := mustUpdate(t, VenueBinance, 5, 5, nil, [][2]string{
		{"1", "1"}, {"3", "3"}, {"2", "2"}, {"6", "6"},
	})
	b.AddOrders(u1)
	u2 := mustUpdate(t, VenueBitstamp, 5, 5, nil, [][2]string{
		{"1.1", "1"}, {"3.1", "3"}, {"2.1", "2"}, {"6.1", "6"},
	})
	b.AddOrders(u2)

	u3 := mustUpdate(t, VenueBitstamp, 5, 5, nil, [][2]string{{"0.5", "9"}})
	b.AddOrders(u3)

	s := b.Summary()
	if len(s.Asks) == 0 || s.Asks[0].Exchange != "bitstamp" || !approxEqual(s.Asks[0].Price, 0.5) {
		t.Fatalf("asks[0] = %+v, want {bitstamp, 0.5, ...}", s.Asks[0])
	}
	bitstampCount := 0
	for _, a := range s.Asks {
		if a.Exchange == "bitstamp" {
			bitstampCount++
		}
	}
	if bitstampCount != 1 {
		t.Errorf("bitstamp entries = %d, want 1 (remaining: %+v)", bitstampCount, s.Asks)
	}
}

// Applying the same Update twice must not duplicate entries.
func TestBook_Idempotent(t *testing.T) {
	b := NewBook(10)
	u := mustUpdate(t, VenueBinance, 5, 5, [][2]string{{"1", "1"}}, [][2]string{{"2", "2"}})
	b.AddOrders(u)
	first := b.Summary()

	u2 := mustUpdate(t, VenueBinance, 5, 5, [][2]string{{"1", "1"}}, [][2]string{{"2", "2"}})
	b.AddOrders(u2)
	second := b.Summary()

	if len(first.Asks) != len(second.Asks) || len(first.Bids) != len(second.Bids) {
		t.Fatalf("non-idempotent: %+v vs %+v", first, second)
	}
}

// A book configured for depth 3 must never surface more than 3 levels per
// side, regardless of how many distinct prices were submitted.
func TestBook_DepthBound(t *testing.T) {
	b := NewBook(3)
	u := NewUpdate(VenueBinance, 5, 5)
	for i := 1; i <= 10; i++ {
		price := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}[i-1]
		if err := u.AddAsk(price, "1"); err != nil {
			t.Fatalf("AddAsk: %v", err)
		}
	}
	b.AddOrders(u)
	if len(b.Summary().Asks) != 3 {
		t.Errorf("len(asks) = %d, want 3", len(b.Summary().Asks))
	}
}
