package notify

import (
	"sync"
	"sync/atomic"
)

// Subscription is one listener's handle on the notification stream. The
// subscriber owns its Unsubscribe and must call it when it stops listening,
// so detached listeners never linger.
type Subscription struct {
	C  <-chan *Notification
	id uint64
	b  *Broadcaster
}

func (s *Subscription) Unsubscribe() {
	s.b.remove(s.id)
}

// Broadcaster fans freshly raised notifications out to live subscribers
// (SSE streams, in-process listeners).
type Broadcaster struct {
	subscribers map[uint64]chan *Notification
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *Notification),
	}
}

func (b *Broadcaster) Subscribe() *Subscription {
	id := b.nextID.Add(1)
	ch := make(chan *Notification, 16)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return &Subscription{C: ch, id: id, b: b}
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(n *Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- n:
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

// Close closes all subscriber channels, causing streams to exit gracefully
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
