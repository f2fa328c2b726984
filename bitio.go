// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import "io"

// Bits are packed LSB-first: the first bit written to a byte occupies
// its lowest-order position.

// A bitWriter accumulates bits and writes full bytes to its contained [io.Writer].
// Write errors are stored and reported by [bitWriter.Close]
// or [bitWriter.Err].
// If the bitWriter is flushed on a non-byte boundary, the last byte
// is zero-padded on the high side. Flushing with no pending bits writes nothing.
type bitWriter struct {
	err error
	w   io.Writer
	// bits is a buffer of unwritten bits.
	// Only the low-order 32 bits are valid between calls to writeBits,
	// and those bytes are stored in reverse order: byte 3 | byte 2 | byte 1 | byte 0.
	bits  uint64
	nbits int // number of bits in bits; always <= 32
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w}
}

// writeBits writes the n low-order bits of b, lowest first. n must be <= 32.
func (w *bitWriter) writeBits(b uint32, n int) {
	if w.err != nil {
		return
	}
	w.bits |= uint64(lowOrderBits(b, n)) << w.nbits
	w.nbits += n
	if w.nbits >= 32 {
		var buf [4]byte
		buf[0] = byte(w.bits)
		buf[1] = byte(w.bits >> 8)
		buf[2] = byte(w.bits >> 16)
		buf[3] = byte(w.bits >> 24)
		w.bits >>= 32
		w.nbits -= 32
		w.write(buf[:])
	}
}

// writeCode appends the bits of c in order.
func (w *bitWriter) writeCode(c BitCode) {
	for len(c) > 0 {
		n := min(len(c), 32)
		var v uint32
		for i, b := range c[:n] {
			v |= uint32(b&1) << i
		}
		w.writeBits(v, n)
		c = c[n:]
	}
}

func (w *bitWriter) Close() error {
	w.flush()
	return w.err
}

// flush writes any pending bits, padding the final byte with zeros.
func (w *bitWriter) flush() {
	var buf [4]byte
	var i int
	for i = 0; i < 4 && w.nbits > 0; i++ {
		buf[i] = byte(w.bits)
		w.bits >>= 8
		if w.nbits > 8 {
			w.nbits -= 8
		} else {
			w.nbits = 0
		}
	}
	w.bits = 0
	if i > 0 {
		w.write(buf[:i])
	}
}

func (w *bitWriter) write(buf []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(buf)
}

func (w *bitWriter) Err() error {
	return w.err
}

// A bitReader returns the bits of its source one at a time,
// in the order a bitWriter wrote them.
type bitReader struct {
	err   error
	r     io.ByteReader
	cur   byte // unread bits of the current byte, next bit lowest
	nbits int  // number of unread bits in cur
}

// newBitReader returns a bitReader for r. If r is not an [io.ByteReader],
// it is read one byte at a time, so no bytes past the last bit used are consumed.
func newBitReader(r io.Reader) *bitReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &singleByteReader{r: r}
	}
	return &bitReader{r: br}
}

// singleByteReader adapts an io.Reader to an io.ByteReader without buffering.
type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	return s.buf[0], nil
}

// readBit returns the next bit, refilling from the source when
// the current byte is used up.
// Reading past the end is ErrUnexpectedEOF, not EOF.
func (r *bitReader) readBit() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.nbits == 0 {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			r.err = err
			return 0, err
		}
		r.cur = b
		r.nbits = 8
	}
	bit := lowOrderBits(r.cur, 1)
	r.cur >>= 1
	r.nbits--
	return bit, nil
}

// lowOrderBits returns the n low-order bits of u.
func lowOrderBits[T uint8 | uint16 | uint32 | uint64](u T, n int) T {
	return u & ((T(1) << n) - 1)
}
