// If you are AI: This file writes FLV bytes for one HTTP-FLV client: file
// header, then the replay snapshot (if any), then the live broadcast —
// replay always precedes live bytes even though frames published after the
// snapshot was taken may already be queued in the subscriber's ring (§5).

package httpflv

import (
	"bufio"
	"context"
	"io"
	"net/http"

	"xlive/internal/bus"
	"xlive/internal/flv"
	"xlive/internal/frame"
)

// Subscriber drains a bus.Subscriber and writes FLV tags to an HTTP client.
type Subscriber struct {
	w   *bufio.Writer
	b   *bus.Bus
	sub *bus.Subscriber
}

// NewSubscriber wraps w and the channel subscription just handed out by a Join.
func NewSubscriber(w io.Writer, b *bus.Bus, sub *bus.Subscriber) *Subscriber {
	return &Subscriber{w: bufio.NewWriter(w), b: b, sub: sub}
}

// WriteFileHeader writes the 9-byte FLV file header plus the leading
// zero PreviousTagSize (13 bytes in all), assuming both audio and video
// are present.
func (s *Subscriber) WriteFileHeader() error {
	if _, err := s.w.Write(flv.NewHeader(true, true).Bytes()); err != nil {
		return err
	}
	_, err := s.w.Write([]byte{0, 0, 0, 0})
	return err
}

// WriteReplay writes the cache snapshot as FLV tags, in the order given.
func (s *Subscriber) WriteReplay(frames []frame.Frame) error {
	for _, f := range frames {
		if err := s.writeFrame(f); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// StreamLive drains the live broadcast bus until ctx is done or the client
// write fails.
func (s *Subscriber) StreamLive(ctx context.Context, flusher http.Flusher) error {
	for {
		f, ok := s.sub.Next(ctx.Done())
		if !ok {
			return nil
		}
		if err := s.writeFrame(f); err != nil {
			return err
		}
		if err := s.w.Flush(); err != nil {
			return err
		}
		flusher.Flush()
	}
}

func (s *Subscriber) writeFrame(f frame.Frame) error {
	tag := flv.Mux(f)
	if tag == nil {
		return nil
	}
	_, err := s.w.Write(tag.Bytes())
	return err
}

// Close detaches the subscriber from its channel's broadcast bus.
func (s *Subscriber) Close() {
	s.b.Detach(s.sub)
}
