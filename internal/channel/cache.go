// If you are AI: This file implements the fast-start cache policy a Channel
// keeps so a newly joined player can be seeded without waiting for the next
// key-frame on the wire.

package channel

import "xlive/internal/frame"

// Cache holds the deterministic fast-start state for one channel: the
// latest metadata and sequence headers, plus the in-progress GOP.
type Cache struct {
	Metadata *frame.Frame
	VideoSeq *frame.Frame
	AudioSeq *frame.Frame
	gop      []frame.Frame
	gopOpen  bool
	fullGOP  bool
}

// NewCache returns an empty cache. fullGOP controls whether non-key-frame
// video frames are appended to the in-progress GOP (§4.2).
func NewCache(fullGOP bool) *Cache {
	return &Cache{fullGOP: fullGOP}
}

// Update applies f to the cache per the channel's fast-start policy.
// It never fails: frames that don't match a caching rule are simply ignored.
func (c *Cache) Update(f frame.Frame) {
	switch f.Kind {
	case frame.KindMetadata:
		snap := f.Clone()
		c.Metadata = &snap

	case frame.KindVideo:
		switch {
		case f.IsSeqHeader && f.IsKeyFrame:
			snap := f.Clone()
			c.VideoSeq = &snap
		case !f.IsSeqHeader && f.IsKeyFrame:
			c.gop = []frame.Frame{f.Clone()}
			c.gopOpen = true
		case !f.IsSeqHeader && !f.IsKeyFrame:
			if c.fullGOP && c.gopOpen {
				c.gop = append(c.gop, f.Clone())
			}
		}

	case frame.KindAudio:
		if f.IsSeqHeader {
			snap := f.Clone()
			c.AudioSeq = &snap
		}
	}
}

// Replay returns the cached state as a fixed-order sequence: metadata, audio
// sequence header, video sequence header, then the GOP in insertion order.
// Missing optional entries are skipped.
func (c *Cache) Replay() []frame.Frame {
	out := make([]frame.Frame, 0, 3+len(c.gop))
	if c.Metadata != nil {
		out = append(out, c.Metadata.Clone())
	}
	if c.AudioSeq != nil {
		out = append(out, c.AudioSeq.Clone())
	}
	if c.VideoSeq != nil {
		out = append(out, c.VideoSeq.Clone())
	}
	for _, f := range c.gop {
		out = append(out, f.Clone())
	}
	return out
}
