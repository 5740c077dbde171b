// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"errors"
	"io"
)

// Decoder is a wrapper around a []byte buffer to implement strict canonical
// RLP decoding. It has the following behaviors:
//
//  1. The decoder only ever accepts the single canonical encoding of a value.
//     Headers that could have been shorter, single bytes wrapped into string
//     headers and length prefixes with leading zeroes are all rejected.
//
//  2. The decoder does not return errors from the individual decoding methods.
//     Internally, an error will halt all future input operations, and the
//     caller retrieves it once at the end.
//
//  3. Decoded byte-strings alias the input buffer. Callers that retain them
//     past the lifetime of the input need to copy (scalars do).
//
//  4. Lists may nest at most MaxDepth levels deep.
type Decoder struct {
	inBuffer []byte // Underlying input buffer to read from
	depth    int    // Number of lists enclosing the values being decoded
	err      error  // Any read error to halt future decoding calls
}

// MaxDepth is the deepest list nesting the decoder accepts.
const MaxDepth = 1024

// reset clears the decoder source so it can be returned into the pool.
func (dec *Decoder) reset() {
	dec.inBuffer = nil
	dec.depth = 0
	dec.err = nil
}

// DecodeValue parses the next value from the input buffer, advancing past it.
func (dec *Decoder) DecodeValue() Value {
	if dec.err != nil {
		return Value{}
	}
	kind, tagsize, size, err := readKind(dec.inBuffer)
	if err != nil {
		dec.err = err
		return Value{}
	}
	// Single bytes are their own encoding, no header to strip
	if tagsize == 0 {
		v := String(dec.inBuffer[:1])
		dec.inBuffer = dec.inBuffer[1:]
		return v
	}
	content := dec.inBuffer[tagsize : tagsize+size]
	dec.inBuffer = dec.inBuffer[tagsize+size:]

	if kind == KindString {
		return String(content)
	}
	if dec.depth >= MaxDepth {
		dec.err = ErrTooDeep
		return Value{}
	}
	// Parse the list items out of a dedicated sub-decoder. Anything overflowing
	// the list payload is an item problem, not an input one.
	sub := &Decoder{inBuffer: content, depth: dec.depth + 1}

	items := make([]Value, 0, countValues(content))
	for len(sub.inBuffer) > 0 && sub.err == nil {
		items = append(items, sub.DecodeValue())
	}
	if sub.err != nil {
		if errors.Is(sub.err, ErrValueTooLarge) {
			sub.err = ErrElemTooLarge
		}
		dec.err = sub.err
		return Value{}
	}
	return List(items...)
}

// countValues is a best effort estimate of the number of values in a list
// payload, used only to presize the item slice. Malformed data is left for
// the decoder to report.
func countValues(content []byte) int {
	var n int
	for len(content) > 0 {
		_, tagsize, size, err := readKind(content)
		if err != nil {
			return n
		}
		content = content[tagsize+size:]
		n++
	}
	return n
}

// readKind parses the header at the start of buf, returning the kind of the
// value, the size of the header and the size of the payload. A tagsize of
// zero signals a single byte value below 0x80.
func readKind(buf []byte) (k Kind, tagsize uint64, size uint64, err error) {
	if len(buf) == 0 {
		return 0, 0, 0, io.ErrUnexpectedEOF
	}
	b := buf[0]
	switch {
	case b < 0x80:
		k, tagsize, size = KindString, 0, 1

	case b < 0xb8:
		k, tagsize, size = KindString, 1, uint64(b-0x80)

		// Reject strings that should have been single bytes
		if size == 1 && len(buf) > 1 && buf[1] < 0x80 {
			return 0, 0, 0, ErrCanonSingleByte
		}
	case b < 0xc0:
		k, tagsize = KindString, uint64(b-0xb7)+1
		size, err = readSize(buf[1:], b-0xb7)

	case b < 0xf8:
		k, tagsize, size = KindList, 1, uint64(b-0xc0)

	default:
		k, tagsize = KindList, uint64(b-0xf7)+1
		size, err = readSize(buf[1:], b-0xf7)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	// Reject values larger than the input slice
	if size > uint64(len(buf))-tagsize {
		return 0, 0, 0, ErrValueTooLarge
	}
	return k, tagsize, size, nil
}

// readSize parses a big-endian length prefix of slen bytes, rejecting any
// encoding that is not minimal.
func readSize(b []byte, slen byte) (uint64, error) {
	if int(slen) > len(b) {
		return 0, io.ErrUnexpectedEOF
	}
	if b[0] == 0 {
		return 0, ErrCanonSize
	}
	var size uint64
	for i := 0; i < int(slen); i++ {
		size = size<<8 | uint64(b[i])
	}
	// Sizes below 56 must use the short header
	if size < 56 {
		return 0, ErrCanonSize
	}
	return size, nil
}
