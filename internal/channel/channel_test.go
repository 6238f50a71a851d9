// If you are AI: This file exercises the ChannelCache policy and the Channel
// actor's packet/broadcast/replay/disconnect behavior against the scenarios
// named in the testable-properties section this engine is built against.

package channel

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"xlive/internal/frame"
)

func TestCacheReplayOrderAndGOP(t *testing.T) {
	c := NewCache(true)
	c.Update(frame.New(frame.KindMetadata, false, false, 0, []byte("m")))
	c.Update(frame.New(frame.KindVideo, true, true, 10, []byte("vsh")))
	c.Update(frame.New(frame.KindAudio, true, false, 20, []byte("ash")))
	c.Update(frame.New(frame.KindVideo, false, true, 30, []byte("kf")))
	c.Update(frame.New(frame.KindVideo, false, false, 40, []byte("p1")))

	got := c.Replay()
	want := []string{"m", "ash", "vsh", "kf", "p1"}
	if len(got) != len(want) {
		t.Fatalf("replay length = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i, f := range got {
		if string(f.Payload) != want[i] {
			t.Fatalf("replay[%d] = %q, want %q", i, f.Payload, want[i])
		}
	}

	first := c.gop[0]
	if first.IsSeqHeader || !first.IsKeyFrame {
		t.Fatalf("GOP must start on a non-seq-header key-frame, got %+v", first)
	}
}

func TestCacheDropsNonGopFramesWithoutFullGOP(t *testing.T) {
	c := NewCache(false)
	c.Update(frame.New(frame.KindVideo, false, true, 0, []byte("kf")))
	c.Update(frame.New(frame.KindVideo, false, false, 10, []byte("p1")))

	got := c.Replay()
	if len(got) != 1 {
		t.Fatalf("expected only the key-frame buffered, got %d frames", len(got))
	}
}

func TestCacheIgnoresNonGopFrameBeforeGopStarts(t *testing.T) {
	c := NewCache(true)
	c.Update(frame.New(frame.KindVideo, false, false, 0, []byte("orphan")))
	if len(c.Replay()) != 0 {
		t.Fatalf("a delta frame with no open GOP must not be cached")
	}
}

type fakeForwarder struct {
	forwarded []frame.Frame
	fail      bool
}

func (f *fakeForwarder) Forward(fr frame.Frame) error {
	if f.fail {
		return errors.New("forward failed")
	}
	f.forwarded = append(f.forwarded, fr)
	return nil
}

type fakeAnnouncer struct {
	announced int
	withdrawn int
}

func (a *fakeAnnouncer) Announce(string) error { a.announced++; return nil }
func (a *fakeAnnouncer) Withdraw(string) error { a.withdrawn++; return nil }

func newTestChannel(opts Options) *Channel {
	opts.Logger = zerolog.Nop()
	return New(opts)
}

func TestPacketUpdatesCacheAndBroadcasts(t *testing.T) {
	ch := newTestChannel(Options{Name: "app1", FullGOP: true})
	sub := ch.Bus().Attach()

	ch.Packet(frame.New(frame.KindVideo, false, true, 1, []byte("kf")))

	done := make(chan struct{})
	got, ok := sub.Next(done)
	if !ok || string(got.Payload) != "kf" {
		t.Fatalf("expected live frame delivery, got %+v ok=%v", got, ok)
	}

	ch.Disconnect()
	time.Sleep(10 * time.Millisecond)
}

func TestInitDataReturnsCacheSnapshot(t *testing.T) {
	ch := newTestChannel(Options{Name: "app1", FullGOP: true})
	ch.Packet(frame.New(frame.KindMetadata, false, false, 0, []byte("m")))
	ch.Packet(frame.New(frame.KindVideo, true, true, 1, []byte("vsh")))

	snap, ok := ch.InitData()
	if !ok {
		t.Fatalf("expected InitData to succeed")
	}
	if len(snap.Frames) != 2 {
		t.Fatalf("expected 2 cached frames, got %d: %+v", len(snap.Frames), snap.Frames)
	}

	ch.Disconnect()
}

func TestPacketMirrorsUpstreamButNotPacketFromOrigin(t *testing.T) {
	fwd := &fakeForwarder{}
	ch := newTestChannel(Options{Name: "app1", FullGOP: true, Forwarder: fwd})

	ch.Packet(frame.New(frame.KindVideo, false, true, 1, []byte("local")))
	ch.PacketFromOrigin(frame.New(frame.KindVideo, false, true, 2, []byte("remote")))

	// Give the actor a moment to process both messages.
	_, _ = ch.InitData()

	if len(fwd.forwarded) != 1 || string(fwd.forwarded[0].Payload) != "local" {
		t.Fatalf("expected exactly the locally-published frame mirrored upstream, got %+v", fwd.forwarded)
	}

	ch.Disconnect()
}

func TestDisconnectTerminatesAndClosesBus(t *testing.T) {
	onClosedCh := make(chan struct{})
	ch := newTestChannel(Options{
		Name:     "app1",
		FullGOP:  true,
		OnClosed: func() { close(onClosedCh) },
	})
	sub := ch.Bus().Attach()

	ch.Disconnect()

	select {
	case <-onClosedCh:
	case <-time.After(time.Second):
		t.Fatalf("channel did not terminate after Disconnect")
	}

	done := make(chan struct{})
	close(done)
	if _, ok := sub.Next(done); ok {
		t.Fatalf("subscriber should see no frames after termination")
	}
}

func TestHeartbeatAnnouncesOnStartAndWithdrawsOnTerminate(t *testing.T) {
	ann := &fakeAnnouncer{}
	ch := newTestChannel(Options{Name: "app1", FullGOP: true, Announcer: ann})

	time.Sleep(10 * time.Millisecond)
	ch.Disconnect()
	time.Sleep(10 * time.Millisecond)

	if ann.announced == 0 {
		t.Fatalf("expected at least the immediate Announce on start")
	}
	if ann.withdrawn != 1 {
		t.Fatalf("expected exactly one Withdraw on terminate, got %d", ann.withdrawn)
	}
}
