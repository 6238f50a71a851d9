// If you are AI: This file converts a frame.Frame into an FLV tag for HTTP-FLV
// and WebSocket-FLV egress. Muxing preserves the original payload without
// transcoding: the codec byte the publisher sent is the codec byte the player gets.

package flv

import "xlive/internal/frame"

// Mux converts f into an FLV tag, or nil if the kind has no FLV mapping.
func Mux(f frame.Frame) *Tag {
	switch f.Kind {
	case frame.KindAudio:
		return NewTag(TagTypeAudio, f.Timestamp, f.Payload)
	case frame.KindVideo:
		return NewTag(TagTypeVideo, f.Timestamp, f.Payload)
	case frame.KindMetadata:
		return NewTag(TagTypeScript, f.Timestamp, f.Payload)
	default:
		return nil
	}
}
