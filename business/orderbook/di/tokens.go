// Package di contains dependency injection tokens for the orderbook context.
package di

import (
	"github.com/fd1az/orderbook-aggregator/internal/di"
	"github.com/fd1az/orderbook-aggregator/internal/engine"
	"github.com/fd1az/orderbook-aggregator/internal/publish"
)

// DI tokens for the orderbook module.
const (
	Loop          = "orderbook.Loop"
	PublishServer = "orderbook.PublishServer"
)

// GetLoop resolves the registered engine.Loop.
func GetLoop(sr di.ServiceRegistry) *engine.Loop {
	return sr.Get(Loop).(*engine.Loop)
}

// GetPublishServer resolves the registered publish.Server.
func GetPublishServer(sr di.ServiceRegistry) *publish.Server {
	return sr.Get(PublishServer).(*publish.Server)
}
