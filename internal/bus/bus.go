// If you are AI: This file is the broadcast bus itself: the fan-out point a
// Channel actor uses to publish frames to every attached subscriber. The bus
// has exactly one publisher (the owning Channel's goroutine), so the
// subscriber set is guarded by a plain mutex rather than being mailbox-driven.

package bus

import (
	"sync"

	"github.com/google/uuid"

	"xlive/internal/frame"
)

// DefaultCapacity is the per-subscriber ring size: bounded, lossy for slow
// receivers per the channel engine's backpressure policy.
const DefaultCapacity = 64

// Bus fans frames out to the subscribers attached to one channel.
type Bus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscriber
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[uuid.UUID]*Subscriber)}
}

// Attach creates and registers a new subscriber, ready to receive frames
// published after this call returns.
func (b *Bus) Attach() *Subscriber {
	sub := NewSubscriber(DefaultCapacity, DropOldest)
	b.mu.Lock()
	b.subs[sub.ID] = sub
	b.mu.Unlock()
	return sub
}

// Detach removes and closes a subscriber, releasing its ring.
func (b *Bus) Detach(sub *Subscriber) {
	b.mu.Lock()
	delete(b.subs, sub.ID)
	b.mu.Unlock()
	sub.Close()
}

// Publish fans f out to every attached subscriber. Publish never blocks:
// a subscriber that cannot keep up silently loses frames per its Strategy.
func (b *Bus) Publish(f frame.Frame) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		sub.push(f)
	}
}

// Count reports the number of currently attached subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// CloseAll detaches and closes every subscriber, used when the owning
// channel terminates.
func (b *Bus) CloseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subs {
		sub.Close()
		delete(b.subs, id)
	}
}
