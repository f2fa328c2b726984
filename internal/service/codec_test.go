package service

import (
	"bytes"
	"encoding/binary"
	"errors"
	"runtime"
	"testing"

	huffman "github.com/jba/huffpack"
	"github.com/jba/huffpack/internal/logger"
)

func newService(t *testing.T, maxOutput int64) *CodecService {
	t.Helper()
	s, err := NewCodecService(4, maxOutput, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	s := newService(t, 1<<20)
	input := []byte("she sells sea shells by the sea shore")
	enc, err := s.Encode(input)
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		dec, err := s.Decode(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(dec, input) {
			t.Fatalf("got %q, want %q", dec, input)
		}
	}
	if got := s.CachedTrees(); got != 1 {
		t.Errorf("got %d cached trees, want 1", got)
	}

	// Same distribution, different order: same table, so the tree is reused.
	enc2, err := s.Encode([]byte("shore sea the by shells sea sells she"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Decode(enc2); err != nil {
		t.Fatal(err)
	}
	if got := s.CachedTrees(); got != 1 {
		t.Errorf("got %d cached trees, want 1", got)
	}
}

func TestDecodeLimits(t *testing.T) {
	s := newService(t, 10)
	enc, err := s.Encode(bytes.Repeat([]byte("ab"), 50))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Decode(enc); !errors.Is(err, ErrTooLarge) {
		t.Errorf("got %v, want ErrTooLarge", err)
	}
	if _, err := s.Decode(enc[:5]); !errors.Is(err, huffman.ErrMalformedContainer) {
		t.Errorf("got %v, want ErrMalformedContainer", err)
	}
}

func TestDecodeTruncatedLargeSize(t *testing.T) {
	const size = 64 << 20
	s := newService(t, size)
	// One symbol whose weight and size claim 64 MiB, with no payload.
	container := []byte{1, 'x'}
	container = binary.BigEndian.AppendUint64(container, size)
	container = binary.BigEndian.AppendUint64(container, size)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := s.Decode(container)
	runtime.ReadMemStats(&after)
	if !errors.Is(err, huffman.ErrMalformedContainer) {
		t.Fatalf("got %v, want ErrMalformedContainer", err)
	}
	if got := after.TotalAlloc - before.TotalAlloc; got > 1<<20 {
		t.Errorf("allocated %d bytes decoding an %d-byte container", got, len(container))
	}
}

func TestInspect(t *testing.T) {
	s := newService(t, 1<<20)
	enc, err := s.Encode([]byte("aab"))
	if err != nil {
		t.Fatal(err)
	}
	in, err := s.Inspect(enc)
	if err != nil {
		t.Fatal(err)
	}
	want := Inspection{
		Size:    3,
		Symbols: 2,
		Depth:   1,
		Records: []InspectRecord{{'a', 2, "1"}, {'b', 1, "0"}},
	}
	if in.Size != want.Size || in.Symbols != want.Symbols || in.Depth != want.Depth || len(in.Records) != 2 {
		t.Fatalf("got %+v, want %+v", in, want)
	}
	for i := range want.Records {
		if in.Records[i] != want.Records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, in.Records[i], want.Records[i])
		}
	}
}
