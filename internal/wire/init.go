// If you are AI: This file encodes the Init handshake payload: which role
// the connecting peer plays and which channel it names.

package wire

import (
	"encoding/binary"
	"errors"
)

// SessionKind is the role a peer declares in its Init message.
type SessionKind uint8

const (
	Publisher SessionKind = iota + 1
	Player
)

func (s SessionKind) String() string {
	if s == Publisher {
		return "Publisher"
	}
	return "Player"
}

// ErrUnknownSessionKind is returned when decoding an Init payload whose role
// byte is neither Publisher nor Player.
var ErrUnknownSessionKind = errors.New("wire: unknown session kind")

// InitPayload is the body of an Init frame.
type InitPayload struct {
	Kind    SessionKind
	AppName string
}

// Encode serializes the payload as: 1 role byte, 2-byte BE name length, name.
func (p InitPayload) Encode() []byte {
	name := []byte(p.AppName)
	buf := make([]byte, 1+2+len(name))
	buf[0] = byte(p.Kind)
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(name)))
	copy(buf[3:], name)
	return buf
}

// DecodeInitPayload parses an InitPayload from an Init frame's payload.
func DecodeInitPayload(b []byte) (InitPayload, error) {
	if len(b) < 3 {
		return InitPayload{}, ErrShortPayload
	}
	kind := SessionKind(b[0])
	if kind != Publisher && kind != Player {
		return InitPayload{}, ErrUnknownSessionKind
	}
	n := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < 3+n {
		return InitPayload{}, ErrShortPayload
	}
	return InitPayload{Kind: kind, AppName: string(b[3 : 3+n])}, nil
}
