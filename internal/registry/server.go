// If you are AI: This file is the registry's UDP server loop, grounded on
// the single-goroutine-processes-one-datagram-at-a-time shape of the system
// this was distilled from.

package registry

import (
	"context"
	"net"

	"github.com/rs/zerolog"
)

// Server listens for registry UDP requests and answers Get queries.
type Server struct {
	conn *net.UDPConn
	dir  *Directory
	log  zerolog.Logger
}

// Listen binds a UDP server on addr.
func Listen(addr string, logger zerolog.Logger) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		conn: conn,
		dir:  NewDirectory(nil),
		log:  logger.With().Str("component", "registry").Logger(),
	}, nil
}

// Directory exposes the underlying directory for the HTTP read surface.
func (s *Server) Directory() *Directory { return s.dir }

// Addr returns the bound local address.
func (s *Server) Addr() net.Addr { return s.conn.LocalAddr() }

// Run processes datagrams until ctx is cancelled or the socket errors.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	buf := make([]byte, MaxDatagramSize)
	for {
		n, from, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		s.handle(buf[:n], from)
	}
}

func (s *Server) handle(b []byte, from *net.UDPAddr) {
	req, err := DecodeRequest(b)
	if err != nil {
		s.log.Warn().Err(err).Stringer("from", from).Msg("malformed registry request")
		return
	}

	s.dir.Touch(from)

	switch req.Kind {
	case Set:
		s.dir.Set(req.ChannelName, from)

	case Delete:
		s.dir.Delete(req.ChannelName)

	case Get:
		resp := Response{Kind: NoFound}
		if addr, ok := s.dir.Get(req.ChannelName); ok {
			resp = Response{Kind: OK, Payload: addr.String()}
		}
		if _, err := s.conn.WriteToUDP(resp.Encode(), from); err != nil {
			s.log.Warn().Err(err).Stringer("to", from).Msg("registry response send failed")
		}
	}
}
