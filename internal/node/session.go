// If you are AI: This file is the framed-transport session server (spec §6):
// the same Init/Media/Ok/Errors handshake runs on origin's, cache's, and
// edge's inter-node listeners, so this one accept loop backs all three.

package node

import (
	"context"
	"io"
	"net"

	"github.com/rs/zerolog"

	"xlive/internal/channel"
	"xlive/internal/frame"
	"xlive/internal/manager"
	"xlive/internal/wire"
)

// SessionServer accepts publisher and player connections speaking the
// framed transport and drives them against a Manager.
type SessionServer struct {
	ln      net.Listener
	mgr     *manager.Manager
	fullGOP bool
	// forwarder is consulted for locally-published frames on edge, so they
	// mirror upstream to the cache tier (§9 design notes); nil elsewhere.
	forwarderFor func(name string) channel.UpstreamForwarder
	announcerFor func(name string) channel.Announcer
	log          zerolog.Logger
}

// NewSessionServer binds a framed-transport listener on addr.
func NewSessionServer(addr string, mgr *manager.Manager, fullGOP bool, logger zerolog.Logger) (*SessionServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &SessionServer{ln: ln, mgr: mgr, fullGOP: fullGOP, log: logger.With().Str("component", "session").Logger()}, nil
}

// WithForwarder installs a per-channel-name upstream forwarder factory,
// used by edge to mirror local publishes to the cache tier.
func (s *SessionServer) WithForwarder(f func(name string) channel.UpstreamForwarder) *SessionServer {
	s.forwarderFor = f
	return s
}

// WithAnnouncer installs a per-channel-name registry announcer factory,
// used by origin to drive the heartbeat.
func (s *SessionServer) WithAnnouncer(f func(name string) channel.Announcer) *SessionServer {
	s.announcerFor = f
	return s
}

// Addr returns the bound local address.
func (s *SessionServer) Addr() net.Addr { return s.ln.Addr() }

// Serve accepts connections until ctx is done.
func (s *SessionServer) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		nc, err := s.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handle(nc)
	}
}

func (s *SessionServer) handle(nc net.Conn) {
	conn := wire.NewConn(nc)
	defer conn.Close()

	kind, payload, err := conn.ReadFrame()
	if err != nil {
		return
	}
	if kind != wire.Init {
		conn.WriteFrame(wire.Errors, []byte("expected Init"))
		return
	}
	init, err := wire.DecodeInitPayload(payload)
	if err != nil {
		conn.WriteFrame(wire.Errors, []byte("malformed Init"))
		return
	}

	switch init.Kind {
	case wire.Publisher:
		s.handlePublisher(conn, init.AppName)
	case wire.Player:
		s.handlePlayer(conn, init.AppName)
	}
}

func (s *SessionServer) handlePublisher(conn *wire.Conn, name string) {
	var forwarder channel.UpstreamForwarder
	if s.forwarderFor != nil {
		forwarder = s.forwarderFor(name)
	}
	var announcer channel.Announcer
	if s.announcerFor != nil {
		announcer = s.announcerFor(name)
	}

	ch, err := s.mgr.Create(name, func() *channel.Channel {
		return channel.New(channel.Options{
			Name:      name,
			FullGOP:   s.fullGOP,
			Forwarder: forwarder,
			Announcer: announcer,
			Logger:    s.log,
		})
	})
	if err != nil {
		conn.WriteFrame(wire.Errors, []byte(err.Error()))
		return
	}

	defer func() {
		ch.Disconnect()
		s.mgr.Release(name)
	}()

	for {
		kind, payload, err := conn.ReadFrame()
		if err != nil {
			if err != io.EOF {
				s.log.Debug().Err(err).Str("channel", name).Msg("publisher session read error")
			}
			return
		}
		switch kind {
		case wire.Media:
			f, err := frame.Decode(payload)
			if err != nil {
				s.log.Warn().Err(err).Str("channel", name).Msg("malformed media frame")
				continue
			}
			ch.Packet(f)
		case wire.Init:
			conn.WriteFrame(wire.Errors, []byte("Init after handshake"))
			return
		default:
			conn.WriteFrame(wire.Errors, []byte("unexpected message kind"))
			return
		}
	}
}

func (s *SessionServer) handlePlayer(conn *wire.Conn, name string) {
	res, err := s.mgr.Join(name)
	if err != nil {
		conn.WriteFrame(wire.Errors, []byte("app_name not found"))
		return
	}
	defer res.Channel.Bus().Detach(res.Subscriber)

	if err := conn.WriteFrame(wire.Ok, nil); err != nil {
		return
	}

	if res.Kind == manager.Local {
		if snap, ok := res.Channel.InitData(); ok {
			for _, f := range snap.Frames {
				if err := conn.WriteFrame(wire.Media, f.Encode(nil)); err != nil {
					return
				}
			}
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 1)
		for {
			if _, err := conn.Raw().Read(buf); err != nil {
				return
			}
		}
	}()

	for {
		f, ok := res.Subscriber.Next(done)
		if !ok {
			return
		}
		if err := conn.WriteFrame(wire.Media, f.Encode(nil)); err != nil {
			return
		}
	}
}
