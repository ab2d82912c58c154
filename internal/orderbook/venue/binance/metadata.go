package binance

import (
	"context"
	"fmt"
	"strings"

	"github.com/fd1az/orderbook-aggregator/internal/apperror"
	"github.com/fd1az/orderbook-aggregator/internal/httpclient"
)

// exchangeInfoResponse is the subset of Binance's exchangeInfo payload this
// adapter reads: per-symbol price/amount precision.
type exchangeInfoResponse struct {
	Symbols []struct {
		Symbol             string `json:"symbol"`
		QuotePrecision     int    `json:"quotePrecision"`
		BaseAssetPrecision int    `json:"baseAssetPrecision"`
	} `json:"symbols"`
}

// fetchPrecision discovers (price_prec, amount_prec) for pair via the
// exchangeInfo metadata endpoint.
func (a *Adapter) fetchPrecision(ctx context.Context) (pricePrec, amountPrec uint64, err error) {
	symbol := strings.ToUpper(a.pair)

	if err := a.limiter.Wait(ctx); err != nil {
		return 0, 0, apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("binance metadata request rate-limited"),
			apperror.WithCause(err),
			apperror.WithContext("symbol="+symbol))
	}

	var body exchangeInfoResponse
	resp, err := a.http.NewRequestWithOptions().
		SetQueryParam("symbol", symbol).
		SetResult(&body).
		Get(ctx, a.cfg.MetadataURL)
	if err != nil {
		return 0, 0, apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("binance metadata request failed"),
			apperror.WithCause(err),
			apperror.WithContext("symbol="+symbol))
	}
	if resp.IsError() {
		return 0, 0, apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage(fmt.Sprintf("binance metadata returned status %d", resp.StatusCode)),
			apperror.WithContext("symbol="+symbol))
	}
	if len(body.Symbols) == 0 {
		return 0, 0, apperror.New(apperror.CodeVenueContractError,
			apperror.WithMessage("binance exchangeInfo returned no symbols"),
			apperror.WithContext("symbol="+symbol))
	}

	s := body.Symbols[0]
	return uint64(s.QuotePrecision), uint64(s.BaseAssetPrecision), nil
}
