// If you are AI: This file exercises the Announcer end-to-end against a real
// registry.Server over loopback UDP: an Announce makes the channel visible
// and a Withdraw removes it. TTL expiry is covered by the registry tests.

package heartbeat

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"xlive/internal/registry"
)

func TestAnnounceThenWithdrawRoundTrip(t *testing.T) {
	srv, err := registry.Listen("127.0.0.1:0", zerolog.Nop())
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	ann, err := Dial(srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ann.Close()

	if err := ann.Announce("app2"); err != nil {
		t.Fatalf("announce: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := srv.Directory().Get("app2"); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := srv.Directory().Get("app2"); !ok {
		t.Fatalf("expected app2 to be announced")
	}

	if err := ann.Withdraw("app2"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := srv.Directory().Get("app2"); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected app2 to be withdrawn")
}
