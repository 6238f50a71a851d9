// If you are AI: This file tests frame round-tripping over a real net.Pipe
// and the Init payload codec, plus rejection of an unknown message kind. Handshake
// safety (Media before Init, Init after handshake) is tested at the session layer.

package wire

import (
	"net"
	"testing"

	"xlive/internal/frame"
)

func TestConnWriteReadFrameRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc := NewConn(client)
	sc := NewConn(server)

	done := make(chan error, 1)
	go func() {
		done <- cc.WriteFrame(Media, frame.New(frame.KindVideo, false, true, 30, []byte("kf")).Encode(nil))
	}()

	kind, payload, err := sc.ReadFrame()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if kind != Media {
		t.Fatalf("got kind %v, want Media", kind)
	}
	f, err := frame.Decode(payload)
	if err != nil {
		t.Fatalf("decode media payload: %v", err)
	}
	if string(f.Payload) != "kf" || f.Timestamp != 30 {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestInitPayloadRoundTrip(t *testing.T) {
	want := InitPayload{Kind: Player, AppName: "app1"}
	got, err := DecodeInitPayload(want.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReadFrameRejectsUnknownKind(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc := NewConn(client)
	sc := NewConn(server)

	go cc.WriteFrame(Kind(99), nil)

	if _, _, err := sc.ReadFrame(); err != ErrUnknownKind {
		t.Fatalf("got %v, want ErrUnknownKind", err)
	}
}
