// If you are AI: This file is the registry's UDP client: the one used by an
// origin's heartbeat loop to Set/Delete its own channel, and by the
// upstream puller to Get an origin's announcer address.

package registry

import (
	"errors"
	"net"
	"time"
)

// ErrNoAnswer is returned when a Get request receives no response within
// the read deadline (spec.md §6: "bounded to a single read").
var ErrNoAnswer = errors.New("registry: no response")

// ErrChannelNotFound is returned by Get when the registry answers NOFOUND.
var ErrChannelNotFound = errors.New("registry: channel not found")

// GetTimeout bounds how long Get waits for a response datagram.
const GetTimeout = 2 * time.Second

// Client sends Set/Get/Delete requests to a registry server.
type Client struct {
	conn *net.UDPConn
}

// Dial connects a UDP socket to the registry at addr.
func Dial(addr string) (*Client, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Set announces that name's publisher is reachable through this client's
// own address. Fire-and-forget: the registry never answers Set.
func (c *Client) Set(name string) error {
	_, err := c.conn.Write(Request{Kind: Set, ChannelName: name}.Encode())
	return err
}

// Delete withdraws name. Best-effort, fire-and-forget.
func (c *Client) Delete(name string) error {
	_, err := c.conn.Write(Request{Kind: Delete, ChannelName: name}.Encode())
	return err
}

// Get resolves name to its announcer address, or ErrChannelNotFound/ErrNoAnswer.
func (c *Client) Get(name string) (string, error) {
	if _, err := c.conn.Write(Request{Kind: Get, ChannelName: name}.Encode()); err != nil {
		return "", err
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(GetTimeout)); err != nil {
		return "", err
	}
	buf := make([]byte, MaxDatagramSize)
	n, err := c.conn.Read(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return "", ErrNoAnswer
		}
		return "", err
	}

	resp, err := DecodeResponse(buf[:n])
	if err != nil {
		return "", err
	}
	if resp.Kind == NoFound {
		return "", ErrChannelNotFound
	}
	return resp.Payload, nil
}

// Close releases the underlying socket.
func (c *Client) Close() error { return c.conn.Close() }
