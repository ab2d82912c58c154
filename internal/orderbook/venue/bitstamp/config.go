// Package bitstamp implements the Bitstamp order-book venue adapter.
package bitstamp

import "time"

// Config holds the endpoints this adapter talks to.
type Config struct {
	MetadataURL     string // e.g. https://www.bitstamp.net/api/v2/trading-pairs-info
	StreamURL       string // e.g. wss://ws.bitstamp.net
	MetadataTimeout time.Duration
}

// DefaultConfig returns Bitstamp's production endpoints.
func DefaultConfig() Config {
	return Config{
		MetadataURL:     "https://www.bitstamp.net/api/v2/trading-pairs-info",
		StreamURL:       "wss://ws.bitstamp.net",
		MetadataTimeout: 10 * time.Second,
	}
}
