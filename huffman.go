// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

// Package huffman compresses byte streams with a Huffman code built
// for the stream's own byte distribution.
//
// A container holds everything needed to decode it:
//
//	count   1 byte               number of table records (1-255)
//	records 9 bytes each         symbol value, then 8-byte weight
//	size    8 bytes              number of decoded bytes
//	payload remainder            packed codes, LSB-first, zero-padded
//
// All integers are big-endian. The decoder rebuilds the tree from the
// table records, so the tree built by [BuildTree] depends only on them.
package huffman

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

const (
	maxRecords = 255
	recordSize = 9
)

// A Header is the part of a container that precedes the payload.
type Header struct {
	Records []Record
	Size    uint64 // sum of the record weights
}

// NewHeader returns the header for data with the histogram h.
func NewHeader(h *Histogram) (*Header, error) {
	switch n := h.Distinct(); {
	case n == 0:
		return nil, ErrEmptyInput
	case n > maxRecords:
		return nil, ErrUnsupportedAlphabetSize
	}
	return &Header{Records: h.Leaves(), Size: h.Total()}, nil
}

// MarshalBinary returns the encoded header.
func (h *Header) MarshalBinary() ([]byte, error) {
	if len(h.Records) == 0 {
		return nil, ErrEmptyInput
	}
	if len(h.Records) > maxRecords {
		return nil, ErrUnsupportedAlphabetSize
	}
	buf := make([]byte, 0, 1+recordSize*len(h.Records)+8)
	buf = append(buf, byte(len(h.Records)))
	for _, r := range h.Records {
		buf = append(buf, r.Value)
		buf = binary.BigEndian.AppendUint64(buf, r.Weight)
	}
	buf = binary.BigEndian.AppendUint64(buf, h.Size)
	return buf, nil
}

// WriteTo writes the encoded header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	buf, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), writeError(err)
	}
	return int64(n), nil
}

// ReadHeader reads and validates a header from r.
// It reads exactly the header's bytes, leaving r at the start of the payload.
func ReadHeader(r io.Reader) (*Header, error) {
	var count [1]byte
	if err := readFull(r, count[:], "record count"); err != nil {
		return nil, err
	}
	if count[0] == 0 {
		return nil, malformed("no table records")
	}
	table := make([]byte, recordSize*int(count[0]))
	if err := readFull(r, table, "table"); err != nil {
		return nil, err
	}
	h := &Header{Records: make([]Record, count[0])}
	var seen [256]bool
	var sum uint64
	for i := range h.Records {
		rec := table[i*recordSize : (i+1)*recordSize]
		v, w := rec[0], binary.BigEndian.Uint64(rec[1:])
		if seen[v] {
			return nil, malformed("duplicate symbol %#02x", v)
		}
		if w == 0 {
			return nil, malformed("zero weight for symbol %#02x", v)
		}
		seen[v] = true
		var carry uint64
		sum, carry = bits.Add64(sum, w, 0)
		if carry != 0 {
			return nil, malformed("table weights overflow")
		}
		h.Records[i] = Record{Value: v, Weight: w}
	}
	var size [8]byte
	if err := readFull(r, size[:], "size"); err != nil {
		return nil, err
	}
	h.Size = binary.BigEndian.Uint64(size[:])
	if h.Size != sum {
		return nil, malformed("size %d does not match table total %d", h.Size, sum)
	}
	return h, nil
}

// readFull is io.ReadFull, reporting a short read as a malformed container.
func readFull(r io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return malformed("truncated %s", what)
		}
		return readError(err)
	}
	return nil
}

// Tree builds the prefix tree described by the header's records.
func (h *Header) Tree() (*Tree, error) {
	t, err := BuildTree(h.Records)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedContainer, err.Error())
	}
	return t, nil
}

// Encode reads all of r and writes a container holding it to w.
//
// The source is read twice: once to count byte frequencies and once to
// encode. If r is an [io.Seeker], it is rewound to its starting offset
// between passes; otherwise, or if r cannot seek (a pipe, say), the first
// pass buffers r in memory.
//
// If the second pass does not match the first, Encode fails with an
// [*IOError] wrapping [ErrSourceChanged]. Part of the container may
// already have been written to w.
func Encode(w io.Writer, r io.Reader) error {
	hist, src, err := countFrequencies(r)
	if err != nil {
		return err
	}
	hdr, err := NewHeader(hist)
	if err != nil {
		return err
	}
	t, err := BuildTree(hdr.Records)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := hdr.WriteTo(bw); err != nil {
		return err
	}
	enc := NewCodeTable(t).NewEncoder(bw)
	n, err := io.Copy(enc, src)
	if err != nil {
		if errors.Is(err, ErrUnknownSymbol) {
			return readError(errors.Wrap(ErrSourceChanged, err.Error()))
		}
		if err == enc.err {
			return err
		}
		return readError(err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if uint64(n) != hdr.Size {
		return readError(errors.Wrapf(ErrSourceChanged, "read %d bytes, then %d", hdr.Size, n))
	}
	if err := bw.Flush(); err != nil {
		return writeError(err)
	}
	return nil
}

// countFrequencies makes the first pass over r, returning its histogram
// and a reader for the second pass.
func countFrequencies(r io.Reader) (*Histogram, io.Reader, error) {
	if s, ok := r.(io.Seeker); ok {
		if start, err := s.Seek(0, io.SeekCurrent); err == nil {
			hist, err := CountFrequencies(r)
			if err != nil {
				return nil, nil, err
			}
			if _, err := s.Seek(start, io.SeekStart); err != nil {
				return nil, nil, readError(err)
			}
			return hist, r, nil
		}
	}
	var buf bytes.Buffer
	hist, err := CountFrequencies(io.TeeReader(r, &buf))
	if err != nil {
		return nil, nil, err
	}
	return hist, &buf, nil
}

// EncodeBytes returns the container for data.
func EncodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// An Encoder writes the packed codes of the bytes written to it.
// It writes no header.
type Encoder struct {
	ct  *CodeTable
	bw  *bitWriter
	err error
}

// NewEncoder returns an Encoder that writes codes from ct to w.
func (ct *CodeTable) NewEncoder(w io.Writer) *Encoder {
	return &Encoder{ct: ct, bw: newBitWriter(w)}
}

// Write packs the code of each byte of data.
// Writing a byte that is not in the table fails with [ErrUnknownSymbol].
func (e *Encoder) Write(data []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	for i, b := range data {
		c, ok := e.ct.Code(b)
		if !ok {
			e.err = errors.Wrapf(ErrUnknownSymbol, "byte %#02x", b)
			return i, e.err
		}
		e.bw.writeCode(c)
		if err := e.bw.Err(); err != nil {
			e.err = writeError(err)
			return i, e.err
		}
	}
	return len(data), nil
}

// Close writes any pending bits, zero-padding the last byte.
// It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if err := e.bw.Close(); err != nil {
		e.err = writeError(err)
	}
	return e.err
}

// Decode reads a container from r and writes the original bytes to w.
// It reads no bytes past the end of the payload, so a container may be
// followed by other data in r. Decode does not buffer r; callers reading
// from a file or network connection should wrap it in a [bufio.Reader]
// when nothing follows the container.
func Decode(w io.Writer, r io.Reader) error {
	hdr, err := ReadHeader(r)
	if err != nil {
		return err
	}
	t, err := hdr.Tree()
	if err != nil {
		return err
	}
	return DecodePayload(w, r, t, hdr.Size)
}

// DecodeBytes returns the original bytes of the container data.
func DecodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePayload decodes size bytes from the packed codes in r,
// using the tree t, and writes them to w.
// It stops reading as soon as size bytes have been decoded.
func DecodePayload(w io.Writer, r io.Reader, t *Tree, size uint64) error {
	bw := bufio.NewWriter(w)
	br := newBitReader(r)
	for n := uint64(0); n < size; n++ {
		node := t
		if node.IsLeaf() {
			// A single-symbol code is one bit long.
			if _, err := br.readBit(); err != nil {
				return payloadError(err, n, size)
			}
		}
		for !node.IsLeaf() {
			bit, err := br.readBit()
			if err != nil {
				return payloadError(err, n, size)
			}
			if bit == 0 {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		if err := bw.WriteByte(node.Value); err != nil {
			return writeError(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return writeError(err)
	}
	return nil
}

func payloadError(err error, n, size uint64) error {
	if err == io.ErrUnexpectedEOF {
		return malformed("payload ends after %d of %d bytes", n, size)
	}
	return readError(err)
}
