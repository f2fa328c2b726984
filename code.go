// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import "strings"

// A BitCode is a sequence of bits, each 0 or 1, in the order they
// are written. For a code derived from a [Tree], it is the path from
// the root: 0 for left, 1 for right.
type BitCode []byte

func (c BitCode) String() string {
	var sb strings.Builder
	for _, b := range c {
		if b == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// A CodeTable maps byte values to their codes.
// It is immutable once built.
type CodeTable struct {
	codes [256]BitCode
	n     int
}

// NewCodeTable derives the code for every leaf of t.
//
// A tree that is a single leaf has no paths, so its value is
// given the one-bit code 0. Decoding such a tree consumes one bit
// per symbol to match.
func NewCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{}
	if t.IsLeaf() {
		ct.set(t.Value, BitCode{0})
		return ct
	}
	ct.walk(t, nil)
	return ct
}

func (ct *CodeTable) walk(t *Tree, prefix BitCode) {
	if t.IsLeaf() {
		ct.set(t.Value, prefix)
		return
	}
	// Each child gets its own copy so sibling paths do not share storage.
	left := append(prefix[:len(prefix):len(prefix)], 0)
	right := append(prefix[:len(prefix):len(prefix)], 1)
	ct.walk(t.Left, left)
	ct.walk(t.Right, right)
}

func (ct *CodeTable) set(v byte, c BitCode) {
	if ct.codes[v] == nil {
		ct.n++
	}
	ct.codes[v] = c
}

// Code returns the code for v, and whether v is in the table.
func (ct *CodeTable) Code(v byte) (BitCode, bool) {
	c := ct.codes[v]
	return c, c != nil
}

// Len returns the number of symbols in the table.
func (ct *CodeTable) Len() int { return ct.n }

// Symbols returns the values in the table in increasing order.
func (ct *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, ct.n)
	for v, c := range ct.codes {
		if c != nil {
			syms = append(syms, byte(v))
		}
	}
	return syms
}
