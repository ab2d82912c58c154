// Package binance implements the Binance depth-10 venue adapter.
package binance

import "time"

// Config holds the endpoints and timing this adapter talks to. All fields
// default to the venue's documented production endpoints.
type Config struct {
	MetadataURL       string        // e.g. https://api.binance.com/api/v3/exchangeInfo
	StreamURLTemplate string        // e.g. wss://stream.binance.com:9443/ws/%s@depth10@100ms
	MetadataTimeout   time.Duration
}

// DefaultConfig returns Binance's production endpoints.
func DefaultConfig() Config {
	return Config{
		MetadataURL:       "https://api.binance.com/api/v3/exchangeInfo",
		StreamURLTemplate: "wss://stream.binance.com:9443/ws/%s@depth10@100ms",
		MetadataTimeout:   10 * time.Second,
	}
}
