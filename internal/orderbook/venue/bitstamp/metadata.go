package bitstamp

import (
	"context"
	"fmt"

	"github.com/fd1az/orderbook-aggregator/internal/apperror"
)

// pairInfo is the subset of a Bitstamp trading-pairs-info entry this
// adapter reads.
type pairInfo struct {
	URLSymbol                  string `json:"url_symbol"`
	BaseDecimals               int    `json:"base_decimals"`
	InstantOrderCounterDecimal int    `json:"instant_order_counter_decimals"`
}

// fetchPrecision discovers (price_prec, amount_prec) for pair by scanning
// trading-pairs-info for the entry whose url_symbol matches. Both fields are
// interpreted as significant-digit precisions (see the design notes on
// Bitstamp precision semantics).
func (a *Adapter) fetchPrecision(ctx context.Context) (pricePrec, amountPrec uint64, err error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return 0, 0, apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("bitstamp metadata request rate-limited"),
			apperror.WithCause(err),
			apperror.WithContext("pair="+a.pair))
	}

	var pairs []pairInfo
	resp, err := a.http.NewRequestWithOptions().
		SetResult(&pairs).
		Get(ctx, a.cfg.MetadataURL)
	if err != nil {
		return 0, 0, apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("bitstamp metadata request failed"),
			apperror.WithCause(err),
			apperror.WithContext("pair="+a.pair))
	}
	if resp.IsError() {
		return 0, 0, apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage(fmt.Sprintf("bitstamp metadata returned status %d", resp.StatusCode)),
			apperror.WithContext("pair="+a.pair))
	}

	for _, p := range pairs {
		if p.URLSymbol == a.pair {
			return uint64(p.BaseDecimals), uint64(p.InstantOrderCounterDecimal), nil
		}
	}

	return 0, 0, apperror.New(apperror.CodeVenueContractError,
		apperror.WithMessage("bitstamp trading-pairs-info has no entry for pair"),
		apperror.WithContext("pair="+a.pair))
}
