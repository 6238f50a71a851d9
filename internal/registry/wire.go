// If you are AI: This file is the registry's UDP wire format (spec §6):
// single-datagram Set/Get/Delete requests and OK/NOFOUND responses, encoded
// as a stable binary layout rather than any general-purpose codec.

package registry

import (
	"encoding/binary"
	"errors"
)

// RequestKind identifies a registry UDP request.
type RequestKind uint8

const (
	Set RequestKind = iota + 1
	Get
	Delete
)

// ResponseKind identifies a registry UDP response. Only Get elicits one.
type ResponseKind uint8

const (
	OK ResponseKind = iota + 1
	NoFound
)

// ErrShortDatagram is returned when decoding a datagram too small to contain
// a valid request or response.
var ErrShortDatagram = errors.New("registry: datagram too short")

// ErrUnknownKind is returned when decoding a request/response kind byte that
// is not one of the defined constants.
var ErrUnknownKind = errors.New("registry: unknown message kind")

// MaxDatagramSize bounds both requests and responses (spec.md §6: "must
// accept up to 1000 bytes").
const MaxDatagramSize = 1000

// Request is a Set/Get/Delete announce or query.
type Request struct {
	Kind        RequestKind
	ChannelName string
}

// Encode serializes r as: 1 kind byte, 2-byte BE name length, name bytes.
func (r Request) Encode() []byte {
	name := []byte(r.ChannelName)
	buf := make([]byte, 1+2+len(name))
	buf[0] = byte(r.Kind)
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(name)))
	copy(buf[3:], name)
	return buf
}

// DecodeRequest parses a Request from a received datagram.
func DecodeRequest(b []byte) (Request, error) {
	if len(b) < 3 {
		return Request{}, ErrShortDatagram
	}
	kind := RequestKind(b[0])
	if kind < Set || kind > Delete {
		return Request{}, ErrUnknownKind
	}
	n := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < 3+n {
		return Request{}, ErrShortDatagram
	}
	return Request{Kind: kind, ChannelName: string(b[3 : 3+n])}, nil
}

// Response answers a Get request.
type Response struct {
	Kind    ResponseKind
	Payload string // the announcer address on OK, empty on NoFound
}

// Encode serializes r the same way as Request: kind byte, 2-byte BE length, payload.
func (r Response) Encode() []byte {
	payload := []byte(r.Payload)
	buf := make([]byte, 1+2+len(payload))
	buf[0] = byte(r.Kind)
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(payload)))
	copy(buf[3:], payload)
	return buf
}

// DecodeResponse parses a Response from a received datagram.
func DecodeResponse(b []byte) (Response, error) {
	if len(b) < 3 {
		return Response{}, ErrShortDatagram
	}
	kind := ResponseKind(b[0])
	if kind != OK && kind != NoFound {
		return Response{}, ErrUnknownKind
	}
	n := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < 3+n {
		return Response{}, ErrShortDatagram
	}
	return Response{Kind: kind, Payload: string(b[3 : 3+n])}, nil
}
