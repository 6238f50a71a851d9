// If you are AI: This file writes FLV tags as binary WebSocket messages,
// mirroring httpflv.Subscriber's replay-then-live contract over a different wire.

package wsflv

import (
	"context"

	"github.com/gorilla/websocket"

	"xlive/internal/bus"
	"xlive/internal/flv"
	"xlive/internal/frame"
)

// Subscriber drains a bus.Subscriber and writes FLV tags over a WebSocket.
type Subscriber struct {
	conn *websocket.Conn
	b    *bus.Bus
	sub  *bus.Subscriber
}

// NewSubscriber wraps conn and the channel subscription just handed out by a Join.
func NewSubscriber(conn *websocket.Conn, b *bus.Bus, sub *bus.Subscriber) *Subscriber {
	return &Subscriber{conn: conn, b: b, sub: sub}
}

// WriteReplay sends the cache snapshot as FLV tags, one per message.
func (s *Subscriber) WriteReplay(frames []frame.Frame) error {
	for _, f := range frames {
		if err := s.writeFrame(f); err != nil {
			return err
		}
	}
	return nil
}

// StreamLive drains the live broadcast bus until ctx is done or the client
// write fails.
func (s *Subscriber) StreamLive(ctx context.Context) error {
	for {
		f, ok := s.sub.Next(ctx.Done())
		if !ok {
			return nil
		}
		if err := s.writeFrame(f); err != nil {
			return err
		}
	}
}

func (s *Subscriber) writeFrame(f frame.Frame) error {
	tag := flv.Mux(f)
	if tag == nil {
		return nil
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, tag.Bytes())
}

// Close detaches the subscriber from the broadcast bus and closes the socket.
func (s *Subscriber) Close() {
	s.b.Detach(s.sub)
	s.conn.Close()
}
