// Package engine runs the event loop core: the single goroutine that owns
// the Book and the live subscriber set, multiplexing venue updates against
// client registrations.
package engine

import (
	"context"

	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
)

// Subscriber is one client's outbound summary queue. Ch is the bounded
// channel the loop delivers onto; Done is closed by the owner (the publish
// server) when the client disconnects, standing in for "outbound queue
// closed" since only the receiving side knows when that has happened.
type Subscriber struct {
	Ch   chan orderbook.Summary
	Done <-chan struct{}
}

// Loop owns the Book exclusively; no other goroutine may touch it.
type Loop struct {
	book        *orderbook.Book
	ordersCh    chan *orderbook.Update
	registerCh  chan Subscriber
	log         logger.LoggerInterface
	subscribers []Subscriber
}

// New creates a Loop publishing up to depth entries per side.
func New(depth int, log logger.LoggerInterface) *Loop {
	return &Loop{
		book:       orderbook.NewBook(depth),
		ordersCh:   make(chan *orderbook.Update),
		registerCh: make(chan Subscriber),
		log:        log,
	}
}

// Orders returns the send side venue adapters publish Updates onto.
func (l *Loop) Orders() chan<- *orderbook.Update {
	return l.ordersCh
}

// Register returns the send side the publish interface hands new
// subscribers through.
func (l *Loop) Register() chan<- Subscriber {
	return l.registerCh
}

// Run blocks, multiplexing orders and registrations, until ctx is
// cancelled. It is deliberately synchronous: map it to one goroutine/thread,
// never called concurrently with itself.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-l.ordersCh:
			l.handleUpdate(ctx, update)
		case sub := <-l.registerCh:
			l.handleRegister(ctx, sub)
		}
	}
}

func (l *Loop) handleUpdate(ctx context.Context, update *orderbook.Update) {
	l.book.AddOrders(update)
	summary := l.book.Summary()

	live := l.subscribers[:0]
	for _, sub := range l.subscribers {
		if l.deliver(ctx, sub, summary) {
			live = append(live, sub)
		} else {
			l.log.Info(ctx, "subscriber dropped: outbound queue closed")
		}
	}
	l.subscribers = live
}

func (l *Loop) handleRegister(ctx context.Context, sub Subscriber) {
	summary := l.book.Summary()
	if l.deliver(ctx, sub, summary) {
		l.subscribers = append(l.subscribers, sub)
		l.log.Info(ctx, "subscriber registered", "subscriber_count", len(l.subscribers))
	} else {
		l.log.Info(ctx, "subscriber registration dropped: outbound queue closed immediately")
	}
}

// deliver performs the blocking send onto sub.Ch, reporting false exactly
// when sub.Done fires first (the client disconnected) or ctx is cancelled.
func (l *Loop) deliver(ctx context.Context, sub Subscriber, summary orderbook.Summary) bool {
	select {
	case sub.Ch <- summary:
		return true
	case <-sub.Done:
		return false
	case <-ctx.Done():
		return false
	}
}
