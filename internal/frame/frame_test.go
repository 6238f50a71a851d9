// If you are AI: This file tests the Frame wire codec round-trip and kind validation.

package frame

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Frame{
		New(KindMetadata, false, false, 0, []byte("m")),
		New(KindVideo, true, true, 10, []byte("vsh")),
		New(KindAudio, true, false, 20, []byte("ash")),
		New(KindVideo, false, true, 30, []byte("kf")),
		New(KindVideo, false, false, 40, []byte("p1")),
	}

	for _, want := range cases {
		encoded := want.Encode(nil)
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Kind != want.Kind || got.IsSeqHeader != want.IsSeqHeader ||
			got.IsKeyFrame != want.IsKeyFrame || got.Timestamp != want.Timestamp ||
			string(got.Payload) != string(want.Payload) {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
		}
	}
}

func TestDecodeRejectsInvalidKind(t *testing.T) {
	buf := []byte{0x00, 0, 0, 0, 0}
	if _, err := Decode(buf); err != ErrUnknownKind {
		t.Fatalf("kind 0: got err %v, want ErrUnknownKind", err)
	}

	buf[0] = 4 << 6
	if _, err := Decode(buf); err != ErrUnknownKind {
		t.Fatalf("kind 4: got err %v, want ErrUnknownKind", err)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3}); err != ErrShortBuffer {
		t.Fatalf("got err %v, want ErrShortBuffer", err)
	}
}

func TestIsVideoGopStart(t *testing.T) {
	if f := New(KindVideo, true, true, 0, nil); f.IsVideoGopStart() {
		t.Fatalf("seq-header key-frame must not start a GOP")
	}
	if f := New(KindVideo, false, true, 0, nil); !f.IsVideoGopStart() {
		t.Fatalf("non-seq-header key-frame must start a GOP")
	}
	if f := New(KindVideo, false, false, 0, nil); f.IsVideoGopStart() {
		t.Fatalf("non-key-frame must not start a GOP")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(KindAudio, false, false, 1, []byte("x"))
	c := f.Clone()
	c.Payload[0] = 'y'
	if f.Payload[0] != 'x' {
		t.Fatalf("Clone must not alias the original payload")
	}
}
