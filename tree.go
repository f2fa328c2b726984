// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// A Record pairs a byte value with its weight.
// Records are the leaves from which a [Tree] is built, and
// the entries of a container's table.
type Record struct {
	Value  byte
	Weight uint64
}

// A Tree is a node in a prefix tree.
// A leaf has no children and represents Value.
// An internal node has exactly two children and its Weight is the sum of theirs.
type Tree struct {
	Weight      uint64
	Value       byte // leaves only
	Left, Right *Tree
}

// IsLeaf reports whether t is a leaf.
func (t *Tree) IsLeaf() bool { return t.Left == nil }

// Depth returns the length of the longest path from t to a leaf.
func (t *Tree) Depth() int {
	if t.IsLeaf() {
		return 0
	}
	return 1 + max(t.Left.Depth(), t.Right.Depth())
}

// String returns an indented dump of the tree, one node per line.
func (t *Tree) String() string {
	var sb strings.Builder
	t.dump(&sb, 0)
	return sb.String()
}

func (t *Tree) dump(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	if t.IsLeaf() {
		fmt.Fprintf(sb, "%#02x weight %d\n", t.Value, t.Weight)
		return
	}
	fmt.Fprintf(sb, "node weight %d\n", t.Weight)
	t.Left.dump(sb, indent+1)
	t.Right.dump(sb, indent+1)
}

// BuildTree builds a Huffman tree from the given leaves.
// Values must be distinct and weights non-zero.
//
// The shape of the result depends only on the set of leaves, not their order:
// ties in weight are broken first by value (for leaves) and then by
// creation order, and the first node removed from the queue becomes the
// left child.
//
// If there is a single leaf, it is returned as the tree.
func BuildTree(leaves []Record) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	sorted := slices.Clone(leaves)
	slices.SortFunc(sorted, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Weight, b.Weight), cmp.Compare(a.Value, b.Value))
	})
	var seen [256]bool
	q := make(nodeQueue, 0, len(sorted))
	for i, r := range sorted {
		if r.Weight == 0 {
			return nil, errors.Errorf("huffman.BuildTree: zero weight for %#02x", r.Value)
		}
		if seen[r.Value] {
			return nil, errors.Errorf("huffman.BuildTree: duplicate value %#02x", r.Value)
		}
		seen[r.Value] = true
		q = append(q, queued{&Tree{Weight: r.Weight, Value: r.Value}, i})
	}
	heap.Init(&q)
	seq := len(q)
	for q.Len() > 1 {
		l := heap.Pop(&q).(queued)
		r := heap.Pop(&q).(queued)
		n := &Tree{Weight: l.t.Weight + r.t.Weight, Left: l.t, Right: r.t}
		heap.Push(&q, queued{n, seq})
		seq++
	}
	return q[0].t, nil
}

type queued struct {
	t   *Tree
	seq int
}

// nodeQueue is a min-heap ordered by weight, then sequence number.
type nodeQueue []queued

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].t.Weight != q[j].t.Weight {
		return q[i].t.Weight < q[j].t.Weight
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(queued)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
