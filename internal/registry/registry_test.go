// If you are AI: This file tests the wire codec and the directory's TTL eviction.

package registry

import (
	"net"
	"sync"
	"testing"
	"time"
)

func TestRequestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Request{
		{Kind: Set, ChannelName: "app1"},
		{Kind: Get, ChannelName: "app2"},
		{Kind: Delete, ChannelName: ""},
	}
	for _, want := range cases {
		got, err := DecodeRequest(want.Encode())
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestDecodeRequestRejectsUnknownKind(t *testing.T) {
	buf := Request{Kind: Set, ChannelName: "x"}.Encode()
	buf[0] = 0
	if _, err := DecodeRequest(buf); err != ErrUnknownKind {
		t.Fatalf("got %v, want ErrUnknownKind", err)
	}
}

func TestResponseEncodeDecodeRoundTrip(t *testing.T) {
	want := Response{Kind: OK, Payload: "127.0.0.1:9878"}
	got, err := DecodeResponse(want.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDirectoryGetHonorsTTL(t *testing.T) {
	now := time.Unix(0, 0)
	d := NewDirectory(func() time.Time { return now })
	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9878}

	d.Set("app2", addr)

	now = now.Add(5 * time.Second)
	if _, ok := d.Get("app2"); !ok {
		t.Fatalf("expected a hit at t+5s")
	}

	now = now.Add(15 * time.Second) // t+20s total
	if _, ok := d.Get("app2"); ok {
		t.Fatalf("expected eviction at t+20s, TTL is 10s")
	}
}

func TestDirectoryDeleteDropsEntryImmediately(t *testing.T) {
	d := NewDirectory(nil)
	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9878}
	d.Set("app3", addr)
	d.Delete("app3")
	if _, ok := d.Get("app3"); ok {
		t.Fatalf("expected no entry after Delete")
	}
}

func TestDirectoryChannelsSkipsExpiredEntries(t *testing.T) {
	now := time.Unix(0, 0)
	d := NewDirectory(func() time.Time { return now })
	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9878}
	d.Set("app4", addr)

	now = now.Add(20 * time.Second)
	if list := d.Channels(); len(list) != 0 {
		t.Fatalf("expected no live channels after TTL, got %+v", list)
	}
}

// TestDirectoryConcurrentSetAndReadsDoNotRace exercises the same access
// pattern as the registry wiring: one goroutine writing via Set (as the UDP
// server loop does) while others read via Servers/Channels (as the HTTP
// handlers do). Run with -race.
func TestDirectoryConcurrentSetAndReadsDoNotRace(t *testing.T) {
	d := NewDirectory(nil)
	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9878}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			d.Set("app5", addr)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			d.Servers()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			d.Channels()
		}
	}()

	wg.Wait()
}
