package bitstamp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fd1az/orderbook-aggregator/internal/apperror"
	"github.com/fd1az/orderbook-aggregator/internal/httpclient"
	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
	"github.com/fd1az/orderbook-aggregator/internal/ratelimit"
	"github.com/fd1az/orderbook-aggregator/internal/wsconn"
)

// Adapter ingests Bitstamp's order_book_{pair} live channel and emits one
// Update per decoded data frame.
type Adapter struct {
	pair    string
	cfg     Config
	log     logger.LoggerInterface
	http    httpclient.Client
	limiter *ratelimit.Limiter
}

// NewAdapter builds a Bitstamp adapter for pair (Bitstamp casing: lowercase).
func NewAdapter(pair string, cfg Config, log logger.LoggerInterface) (*Adapter, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("bitstamp"),
		httpclient.WithRequestTimeout(cfg.MetadataTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("bitstamp: failed to build http client: %w", err)
	}
	return &Adapter{pair: pair, cfg: cfg, log: log, http: client, limiter: ratelimit.New(60)}, nil
}

// subscribeFrame is the outbound bts:subscribe handshake message.
type subscribeFrame struct {
	Event string `json:"event"`
	Data  struct {
		Channel string `json:"channel"`
	} `json:"data"`
}

// frame is the generic inbound envelope: event name plus opaque payload.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// dataFrame is the payload of an "order_book_{pair}" data event.
type dataFrame struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

func channelName(pair string) string {
	return "order_book_" + pair
}

// Run discovers precision, connects once, completes the subscribe
// handshake, and decodes data frames until ctx is done.
func (a *Adapter) Run(ctx context.Context, out chan<- *orderbook.Update) error {
	pricePrec, amountPrec, err := a.fetchPrecision(ctx)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "bitstamp precision discovered", "pair", a.pair, "price_prec", pricePrec, "amount_prec", amountPrec)

	wsCfg := wsconn.DefaultConfig(a.cfg.StreamURL, "bitstamp-"+a.pair)
	client, err := wsconn.New(wsCfg)
	if err != nil {
		return apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("bitstamp: failed to build websocket client"),
			apperror.WithCause(err))
	}
	// wsconn reconnects on its own (without re-sending the subscription) and
	// never closes Messages(); its switch to the reconnecting state is how a
	// dropped connection shows up here.
	dropped := make(chan struct{}, 1)
	client.OnStateChange(func(state wsconn.State, _ error) {
		if state == wsconn.StateReconnecting {
			select {
			case dropped <- struct{}{}:
			default:
			}
		}
	})
	if err := client.Connect(ctx); err != nil {
		return apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("bitstamp: stream connect failed"),
			apperror.WithCause(err))
	}
	defer client.Close()

	sub := subscribeFrame{Event: "bts:subscribe"}
	sub.Data.Channel = channelName(a.pair)
	if err := client.SendJSON(ctx, sub); err != nil {
		return apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("bitstamp: subscribe send failed"),
			apperror.WithCause(err))
	}

	if err := a.awaitSubscriptionConfirmed(ctx, client); err != nil {
		return err
	}

	a.log.Info(ctx, "bitstamp stream subscribed", "pair", a.pair, "channel", sub.Data.Channel)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-dropped:
			return apperror.New(apperror.CodeVenueNetworkError,
				apperror.WithMessage("bitstamp: stream closed"))
		case raw, ok := <-client.Messages():
			if !ok {
				return apperror.New(apperror.CodeVenueNetworkError,
					apperror.WithMessage("bitstamp: stream closed"))
			}
			update, err := a.decode(ctx, raw, pricePrec, amountPrec)
			if err != nil {
				return err
			}
			if update == nil {
				continue
			}
			select {
			case out <- update:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// awaitSubscriptionConfirmed blocks for the first inbound frame and aborts
// unless it is bts:subscription_succeeded, per the venue contract.
func (a *Adapter) awaitSubscriptionConfirmed(ctx context.Context, client *wsconn.Client) error {
	select {
	case <-ctx.Done():
		return nil
	case raw, ok := <-client.Messages():
		if !ok {
			return apperror.New(apperror.CodeVenueNetworkError,
				apperror.WithMessage("bitstamp: stream closed before subscription confirmed"))
		}
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			return apperror.New(apperror.CodeVenueDecodeError,
				apperror.WithMessage("bitstamp: handshake response decode failed"),
				apperror.WithCause(err))
		}
		if f.Event != "bts:subscription_succeeded" {
			return apperror.New(apperror.CodeVenueContractError,
				apperror.WithMessage("bitstamp: subscription not confirmed"),
				apperror.WithContext("event="+f.Event))
		}
		return nil
	}
}

func (a *Adapter) decode(ctx context.Context, raw []byte, pricePrec, amountPrec uint64) (*orderbook.Update, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, apperror.New(apperror.CodeVenueDecodeError,
			apperror.WithMessage("bitstamp: frame decode failed"),
			apperror.WithCause(err))
	}
	if f.Event != "data" {
		// Heartbeats and other control frames are not order book data.
		return nil, nil
	}

	var d dataFrame
	if err := json.Unmarshal(f.Data, &d); err != nil {
		return nil, apperror.New(apperror.CodeVenueDecodeError,
			apperror.WithMessage("bitstamp: data payload decode failed"),
			apperror.WithCause(err))
	}

	update := orderbook.NewUpdate(orderbook.VenueBitstamp, pricePrec, amountPrec)
	for _, row := range d.Bids {
		if len(row) != 2 {
			a.log.Warn(ctx, "bitstamp: skipping malformed bid row", "row", row)
			continue
		}
		if err := update.AddBid(row[0], row[1]); err != nil {
			return nil, apperror.New(apperror.CodeVenueDecodeError,
				apperror.WithMessage("bitstamp: invalid bid decimal"),
				apperror.WithCause(err))
		}
	}
	for _, row := range d.Asks {
		if len(row) != 2 {
			a.log.Warn(ctx, "bitstamp: skipping malformed ask row", "row", row)
			continue
		}
		if err := update.AddAsk(row[0], row[1]); err != nil {
			return nil, apperror.New(apperror.CodeVenueDecodeError,
				apperror.WithMessage("bitstamp: invalid ask decimal"),
				apperror.WithCause(err))
		}
	}
	return update, nil
}
