// If you are AI: This file defines Frame, the immutable media record that flows
// through the channel engine, and its on-wire binary encoding.

package frame

import (
	"encoding/binary"
	"errors"
)

// Kind identifies what a Frame carries.
type Kind uint8

const (
	// KindMetadata carries stream metadata (e.g. onMetaData-equivalent script data).
	KindMetadata Kind = 1
	// KindVideo carries a video access unit.
	KindVideo Kind = 2
	// KindAudio carries an audio access unit.
	KindAudio Kind = 3
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMetadata:
		return "metadata"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// ErrUnknownKind is returned when decoding a frame whose kind bits are 0 or >= 4.
var ErrUnknownKind = errors.New("frame: unknown kind")

// ErrShortBuffer is returned when decoding a buffer too small to hold a frame header.
var ErrShortBuffer = errors.New("frame: buffer too short")

// headerSize is the prefix byte plus the 4-byte big-endian timestamp.
const headerSize = 5

// Frame is an immutable media record: a classified, timestamped payload.
// Frame is a value type; callers clone it (Clone) rather than share mutable state.
type Frame struct {
	Kind        Kind
	IsSeqHeader bool
	IsKeyFrame  bool
	Timestamp   uint32 // milliseconds since stream start
	Payload     []byte
}

// New builds a Frame, copying the payload so the caller's buffer can be reused.
func New(kind Kind, isSeqHeader, isKeyFrame bool, timestamp uint32, payload []byte) Frame {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return Frame{
		Kind:        kind,
		IsSeqHeader: isSeqHeader,
		IsKeyFrame:  isKeyFrame,
		Timestamp:   timestamp,
		Payload:     buf,
	}
}

// Clone returns a deep copy of the frame, safe to hand to an independent owner.
func (f Frame) Clone() Frame {
	buf := make([]byte, len(f.Payload))
	copy(buf, f.Payload)
	f.Payload = buf
	return f
}

// IsVideoGopStart reports whether the frame starts a new GOP per the cache policy:
// a non-seq-header video key-frame.
func (f Frame) IsVideoGopStart() bool {
	return f.Kind == KindVideo && !f.IsSeqHeader && f.IsKeyFrame
}

// Encode appends the wire encoding of f to dst and returns the extended slice.
// Layout: 1 prefix byte (kind<<6 | seqHeader<<5 | keyFrame<<4), 4-byte BE timestamp, payload.
func (f Frame) Encode(dst []byte) []byte {
	var prefix byte
	prefix = byte(f.Kind) << 6
	if f.IsSeqHeader {
		prefix |= 1 << 5
	}
	if f.IsKeyFrame {
		prefix |= 1 << 4
	}

	out := append(dst, prefix)
	var ts [4]byte
	binary.BigEndian.PutUint32(ts[:], f.Timestamp)
	out = append(out, ts[:]...)
	out = append(out, f.Payload...)
	return out
}

// EncodedLen returns the number of bytes Encode would append for f.
func (f Frame) EncodedLen() int {
	return headerSize + len(f.Payload)
}

// Decode parses a Frame from b. The returned Frame's Payload aliases b;
// callers that retain the Frame beyond the lifetime of b must Clone it.
func Decode(b []byte) (Frame, error) {
	if len(b) < headerSize {
		return Frame{}, ErrShortBuffer
	}

	prefix := b[0]
	kind := Kind(prefix >> 6)
	if kind == 0 || kind >= 4 {
		return Frame{}, ErrUnknownKind
	}

	return Frame{
		Kind:        kind,
		IsSeqHeader: prefix&(1<<5) != 0,
		IsKeyFrame:  prefix&(1<<4) != 0,
		Timestamp:   binary.BigEndian.Uint32(b[1:5]),
		Payload:     b[5:],
	}, nil
}
