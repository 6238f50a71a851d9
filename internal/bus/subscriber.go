// If you are AI: This file wraps a Ring with a wake-up channel so a consumer
// goroutine can block for new frames instead of busy-polling the ring.

package bus

import (
	"sync"

	"github.com/google/uuid"

	"xlive/internal/frame"
)

// Subscriber receives frames fanned out from a channel's broadcast bus.
// Exactly one goroutine may call Next; push is called only by the bus itself.
type Subscriber struct {
	ID    uuid.UUID
	ring  *Ring
	wake  chan struct{}
	close chan struct{}
	once  sync.Once
}

// NewSubscriber allocates a subscriber with the given ring capacity.
func NewSubscriber(capacity uint32, strategy Strategy) *Subscriber {
	return &Subscriber{
		ID:    uuid.New(),
		ring:  NewRing(capacity, strategy),
		wake:  make(chan struct{}, 1),
		close: make(chan struct{}),
	}
}

// push stores f and wakes the consumer. Never blocks.
func (s *Subscriber) push(f frame.Frame) {
	s.ring.Write(f)
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Next blocks until a frame is available, the subscriber is closed, or done
// is closed. ok is false once the subscriber has been closed and drained.
func (s *Subscriber) Next(done <-chan struct{}) (f frame.Frame, ok bool) {
	for {
		if f, ok = s.ring.Read(); ok {
			return f, true
		}
		select {
		case <-s.wake:
			continue
		case <-s.close:
			if f, ok = s.ring.Read(); ok {
				return f, true
			}
			return frame.Frame{}, false
		case <-done:
			return frame.Frame{}, false
		}
	}
}

// Dropped reports how many frames this subscriber has lost to backpressure.
func (s *Subscriber) Dropped() uint64 {
	return s.ring.Dropped()
}

// Close marks the subscriber as detached; buffered frames may still be drained.
func (s *Subscriber) Close() {
	s.once.Do(func() { close(s.close) })
}
