// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import "github.com/pkg/errors"

var (
	// ErrEmptyInput is returned by Encode when the source contains no bytes.
	// There is no prefix code for an empty alphabet.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrUnsupportedAlphabetSize is returned when the source uses all 256 byte
	// values. The container stores the symbol count in a single byte.
	ErrUnsupportedAlphabetSize = errors.New("huffman: more than 255 distinct symbols")

	// ErrMalformedContainer is returned by Decode when the container is
	// truncated or internally inconsistent.
	ErrMalformedContainer = errors.New("huffman: malformed container")

	// ErrUnknownSymbol is returned by an Encoder given a byte with no code.
	ErrUnknownSymbol = errors.New("huffman: no code for symbol")

	// ErrSourceChanged is returned, wrapped in an IOError, when the second
	// pass of Encode reads different bytes than the first.
	ErrSourceChanged = errors.New("huffman: source changed between passes")
)

// An IOError reports a failure of the underlying source or sink.
type IOError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *IOError) Error() string { return "huffman: " + e.Op + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

func readError(err error) error {
	return &IOError{Op: "read", Err: errors.WithStack(err)}
}

func writeError(err error) error {
	return &IOError{Op: "write", Err: errors.WithStack(err)}
}

// malformed wraps ErrMalformedContainer with detail.
func malformed(format string, args ...any) error {
	return errors.Wrapf(ErrMalformedContainer, format, args...)
}
