// Package stream fans view snapshots out to connected clients.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/mr1hm/go-quake-viewer/internal/models"
)

// subscriberBuffer is how many snapshots a slow client may lag behind.
const subscriberBuffer = 16

type Broadcaster struct {
	subscribers map[uint64]chan *models.ViewSnapshot
	nextID      atomic.Uint64
	mu          sync.RWMutex
	closed      bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *models.ViewSnapshot),
	}
}

// Subscribe registers a client. After Close the returned channel is already closed.
func (b *Broadcaster) Subscribe() (uint64, chan *models.ViewSnapshot) {
	id := b.nextID.Add(1)
	ch := make(chan *models.ViewSnapshot, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subscribers[id] = ch
	}
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Broadcast delivers s to every subscriber without blocking.
func (b *Broadcaster) Broadcast(s *models.ViewSnapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- s:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, ending their streams.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
