// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import "io"

// A Histogram counts the occurrences of each byte value.
// It is an [io.Writer], so it can count a stream with [io.Copy]
// or alongside another reader with [io.TeeReader].
type Histogram [256]uint64

// CountFrequencies reads r to EOF and returns the histogram of its bytes.
func CountFrequencies(r io.Reader) (*Histogram, error) {
	var h Histogram
	if _, err := io.Copy(&h, r); err != nil {
		return nil, readError(err)
	}
	return &h, nil
}

func (h *Histogram) Write(data []byte) (int, error) {
	for _, b := range data {
		h[b]++
	}
	return len(data), nil
}

// Distinct returns the number of byte values with a non-zero count.
func (h *Histogram) Distinct() int {
	n := 0
	for _, c := range h {
		if c != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (h *Histogram) Total() uint64 {
	var t uint64
	for _, c := range h {
		t += c
	}
	return t
}

// Leaves returns one Record for each byte value with a non-zero count,
// in increasing order of value.
func (h *Histogram) Leaves() []Record {
	var rs []Record
	for v, c := range h {
		if c != 0 {
			rs = append(rs, Record{Value: byte(v), Weight: c})
		}
	}
	return rs
}
