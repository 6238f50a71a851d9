// If you are AI: This file is the upstream puller (spec §4.5): invoked on a
// directory miss, it resolves an address, opens a player session upstream,
// installs a Channel, and forwards frames into it until the session drops.

package upstream

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"xlive/internal/channel"
	"xlive/internal/frame"
	"xlive/internal/registry"
	"xlive/internal/wire"
)

// DialTimeout bounds the upstream TCP dial.
const DialTimeout = 5 * time.Second

// Policy resolves the address of the node to pull a missing channel from.
// Exactly one of the two forms applies: Direct (a fixed address) or
// ViaRegistry (ask a registry server for the announcer address).
type Policy struct {
	direct       string
	registryAddr string
}

// Direct pins upstream to a fixed address (cache's -o fallback, edge's -o).
func Direct(addr string) Policy { return Policy{direct: addr} }

// ViaRegistry resolves the upstream address per-channel through a registry
// (cache/edge's -r, preferred over -o when set).
func ViaRegistry(registryAddr string) Policy { return Policy{registryAddr: registryAddr} }

func (p Policy) resolve(name string) (string, error) {
	if p.registryAddr != "" {
		client, err := registry.Dial(p.registryAddr)
		if err != nil {
			return "", fmt.Errorf("upstream: dial registry: %w", err)
		}
		defer client.Close()
		return client.Get(name)
	}
	if p.direct != "" {
		return p.direct, nil
	}
	return "", fmt.Errorf("upstream: no policy configured")
}

// Puller opens upstream sessions and installs Channels for a directory miss.
type Puller struct {
	policy  Policy
	fullGOP bool
	log     zerolog.Logger
	release func(name string)
}

// New creates a Puller. release is invoked (Manager.Release) when the
// forwarder goroutine observes the upstream session end.
func New(policy Policy, fullGOP bool, logger zerolog.Logger, release func(name string)) *Puller {
	return &Puller{policy: policy, fullGOP: fullGOP, log: logger.With().Str("component", "upstream").Logger(), release: release}
}

// Pull resolves name, opens a player session upstream, and returns a freshly
// started Channel fed by a background forwarder goroutine. It implements
// manager.Puller.
func (p *Puller) Pull(name string) (*channel.Channel, error) {
	addr, err := p.policy.resolve(name)
	if err != nil {
		return nil, err
	}

	nc, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("upstream: dial %s: %w", addr, err)
	}
	conn := wire.NewConn(nc)

	if err := conn.WriteFrame(wire.Init, wire.InitPayload{Kind: wire.Player, AppName: name}.Encode()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("upstream: send init: %w", err)
	}

	kind, payload, err := conn.ReadFrame()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("upstream: read init reply: %w", err)
	}
	switch kind {
	case wire.Ok:
	case wire.Errors:
		conn.Close()
		return nil, fmt.Errorf("upstream: rejected: %s", string(payload))
	default:
		conn.Close()
		return nil, fmt.Errorf("upstream: protocol violation, unexpected reply kind %v", kind)
	}

	ch := channel.New(channel.Options{
		Name:    name,
		FullGOP: p.fullGOP,
		Logger:  p.log,
	})

	go p.forward(name, conn, ch)

	return ch, nil
}

func (p *Puller) forward(name string, conn *wire.Conn, ch *channel.Channel) {
	defer conn.Close()
	for {
		kind, payload, err := conn.ReadFrame()
		if err != nil {
			p.log.Debug().Err(err).Str("channel", name).Msg("upstream session ended")
			break
		}
		if kind != wire.Media {
			p.log.Warn().Str("channel", name).Stringer("kind", kind).Msg("unexpected frame on upstream session")
			continue
		}
		f, err := frame.Decode(payload)
		if err != nil {
			p.log.Warn().Err(err).Str("channel", name).Msg("malformed upstream media frame")
			continue
		}
		ch.PacketFromOrigin(f)
	}
	ch.Disconnect()
	if p.release != nil {
		p.release(name)
	}
}
