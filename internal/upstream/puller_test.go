// If you are AI: This file exercises the upstream puller's handshake and
// frame-forwarding against a fake origin-like TCP listener.

package upstream

import (
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"xlive/internal/channel"
	"xlive/internal/frame"
	"xlive/internal/wire"
)

func fakeUpstreamServer(t *testing.T, accept func(conn *wire.Conn)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		accept(wire.NewConn(nc))
	}()
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String()
}

func TestPullInstallsChannelAndForwardsFrames(t *testing.T) {
	addr := fakeUpstreamServer(t, func(conn *wire.Conn) {
		defer conn.Close()
		kind, payload, err := conn.ReadFrame()
		if err != nil || kind != wire.Init {
			t.Errorf("expected Init frame, got kind=%v err=%v", kind, err)
			return
		}
		init, err := wire.DecodeInitPayload(payload)
		if err != nil || init.Kind != wire.Player || init.AppName != "app1" {
			t.Errorf("unexpected init payload: %+v err=%v", init, err)
			return
		}
		if err := conn.WriteFrame(wire.Ok, nil); err != nil {
			t.Errorf("write ok: %v", err)
			return
		}
		f := frame.New(frame.KindVideo, false, true, 1, []byte("kf"))
		conn.WriteFrame(wire.Media, f.Encode(nil))
	})

	released := make(chan string, 1)
	p := New(Direct(addr), true, zerolog.Nop(), func(name string) { released <- name })

	ch, err := p.Pull("app1")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	defer ch.Disconnect()

	snap, ok := waitForInitData(ch, time.Second)
	if !ok || len(snap.Frames) != 1 || string(snap.Frames[0].Payload) != "kf" {
		t.Fatalf("expected the forwarded key-frame cached, got %+v ok=%v", snap, ok)
	}

	select {
	case name := <-released:
		if name != "app1" {
			t.Fatalf("released %q, want app1", name)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected Release after upstream session closed")
	}
}

func TestPullFailsOnErrorsReply(t *testing.T) {
	addr := fakeUpstreamServer(t, func(conn *wire.Conn) {
		defer conn.Close()
		conn.ReadFrame()
		conn.WriteFrame(wire.Errors, []byte("app_name not found"))
	})

	p := New(Direct(addr), true, zerolog.Nop(), nil)
	if _, err := p.Pull("missing"); err == nil {
		t.Fatalf("expected an error on Errors reply")
	}
}

func waitForInitData(ch *channel.Channel, timeout time.Duration) (channel.Snapshot, bool) {
	deadline := time.Now().Add(timeout)
	for {
		snap, ok := ch.InitData()
		if ok && len(snap.Frames) > 0 {
			return snap, true
		}
		if time.Now().After(deadline) {
			return snap, false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
