// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"bytes"
	"errors"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("a man a plan a canal panama"))
	f.Add([]byte("aab"))
	f.Add(bytes.Repeat([]byte{0x41}, 1000))
	f.Fuzz(func(t *testing.T, source []byte) {
		enc, err := EncodeBytes(source)
		if err != nil {
			var h Histogram
			h.Write(source)
			if len(source) == 0 && errors.Is(err, ErrEmptyInput) ||
				h.Distinct() > 255 && errors.Is(err, ErrUnsupportedAlphabetSize) {
				return
			}
			t.Fatal(err)
		}
		dec, err := DecodeBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(dec, source) {
			t.Fatal("round trip failed")
		}
	})
}

func FuzzDecode(f *testing.F) {
	good, _ := EncodeBytes([]byte("abracadabra"))
	f.Add(good)
	f.Add([]byte{1, 'x', 0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 0, 0, 0, 0, 9, 0, 0})
	f.Fuzz(func(t *testing.T, data []byte) {
		// Arbitrary input must fail cleanly, never panic.
		if _, err := DecodeBytes(data); err != nil && !errors.Is(err, ErrMalformedContainer) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	})
}
