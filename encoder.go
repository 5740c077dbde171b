// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"encoding/binary"
	"io"
)

// Encoder is a wrapper around an io.Writer or a []byte buffer to implement
// canonical RLP encoding. It has the following behaviors:
//
//  1. The encoder does not buffer when streaming, it simply writes to the
//     wrapped output stream directly. If you need buffering (and flushing),
//     that is up to you.
//
//  2. The encoder does not return errors that were hit during writing to the
//     underlying output stream from individual encoding methods. Since there
//     is no expectation (in general) for failure, user code can be denser if
//     error checking is done at the end. Internally, of course, an error will
//     halt all future output operations.
//
//  3. Every list header needs the size of its payload up front. The encoder
//     computes it from the value tree itself, so nothing is ever re-written
//     or shifted in the output.
type Encoder struct {
	outWriter io.Writer // Underlying output stream to write into (streaming mode)
	outBuffer []byte    // Underlying output buffer to append into (buffered mode)
	err       error     // Any write error to halt future encoding calls
	buf       [9]byte   // Header conversion buffer
}

// reset clears the encoder sinks so it can be returned into the pool.
func (enc *Encoder) reset() {
	enc.outWriter = nil
	enc.outBuffer = nil
	enc.err = nil
}

// write appends a blob to whichever output the encoder is wired into.
func (enc *Encoder) write(blob []byte) {
	if enc.err != nil {
		return
	}
	if enc.outWriter != nil {
		_, enc.err = enc.outWriter.Write(blob)
		return
	}
	enc.outBuffer = append(enc.outBuffer, blob...)
}

// writeHeader serializes a string or list header for a payload of the given
// size, picking the short form iff the payload fits into 55 bytes.
func (enc *Encoder) writeHeader(short byte, long byte, size uint64) {
	if size <= 55 {
		enc.buf[0] = short + byte(size)
		enc.write(enc.buf[:1])
		return
	}
	n := intSize(size)
	binary.BigEndian.PutUint64(enc.buf[1:], size)
	enc.buf[8-n] = long + byte(n)
	enc.write(enc.buf[8-n : 9])
}

// EncodeString serializes a byte-string, collapsing single bytes below 0x80
// into themselves.
func (enc *Encoder) EncodeString(blob []byte) {
	if enc.err != nil {
		return
	}
	if len(blob) == 1 && blob[0] < 0x80 {
		enc.write(blob)
		return
	}
	enc.writeHeader(0x80, 0xb7, uint64(len(blob)))
	enc.write(blob)
}

// EncodeValue serializes an arbitrarily nested value.
func (enc *Encoder) EncodeValue(v Value) {
	if enc.err != nil {
		return
	}
	if v.kind == KindString {
		enc.EncodeString(v.str)
		return
	}
	enc.writeHeader(0xc0, 0xf7, sizeContent(v))
	for _, item := range v.items {
		enc.EncodeValue(item)
	}
}
