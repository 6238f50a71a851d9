// If you are AI: This file is the edge-side mirror: when a channel has a
// local publisher, its Packet frames are also forwarded to the cache tier
// as a Publisher session, per spec §9's edge-mirrors-upstream note.

package upstream

import (
	"fmt"
	"net"
	"sync"

	"xlive/internal/frame"
	"xlive/internal/wire"
)

// Forwarder implements channel.UpstreamForwarder by replaying frames over a
// lazily-opened Publisher session to the resolved upstream tier.
type Forwarder struct {
	policy Policy
	name   string

	mu   sync.Mutex
	conn *wire.Conn
}

// NewForwarder builds a Forwarder for a single channel name. The upstream
// Publisher session is opened on the first Forward call, not eagerly.
func NewForwarder(policy Policy, name string) *Forwarder {
	return &Forwarder{policy: policy, name: name}
}

// Forward sends f upstream, dialing and handshaking on first use. If the
// write fails, the connection is dropped and the error returned without a
// retry; the next call dials again.
func (f *Forwarder) Forward(fr frame.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn == nil {
		conn, err := f.dial()
		if err != nil {
			return err
		}
		f.conn = conn
	}

	if err := f.conn.WriteFrame(wire.Media, fr.Encode(nil)); err != nil {
		f.conn.Close()
		f.conn = nil
		return fmt.Errorf("upstream: forward: %w", err)
	}
	return nil
}

func (f *Forwarder) dial() (*wire.Conn, error) {
	addr, err := f.policy.resolve(f.name)
	if err != nil {
		return nil, err
	}
	nc, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("upstream: dial %s: %w", addr, err)
	}
	conn := wire.NewConn(nc)
	if err := conn.WriteFrame(wire.Init, wire.InitPayload{Kind: wire.Publisher, AppName: f.name}.Encode()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("upstream: forwarder init: %w", err)
	}
	return conn, nil
}

// Close releases the forwarder's connection, if any.
func (f *Forwarder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return nil
	}
	err := f.conn.Close()
	f.conn = nil
	return err
}
