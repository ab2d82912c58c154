package orderbook

import "context"

// Adapter is a venue ingestor: it discovers the venue's declared price and
// amount precision for a pair, opens its depth stream, and pushes one
// Update per decoded message onto out until ctx is cancelled or a fatal
// venue-contract, network, or decode error occurs.
type Adapter interface {
	Run(ctx context.Context, out chan<- *Update) error
}
