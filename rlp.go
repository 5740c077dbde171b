// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rlp is a strict canonical RLP encoder/decoder with a declarative,
// profile driven mapping between named fields and wire values.
package rlp

import (
	"fmt"
	"io"
	"sync"
)

// encoderPool is a pool of RLP encoders to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var encoderPool = sync.Pool{
	New: func() any {
		return new(Encoder)
	},
}

// decoderPool is a pool of RLP decoders to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var decoderPool = sync.Pool{
	New: func() any {
		return new(Decoder)
	},
}

// EncodeToStream serializes the value into a data stream. Do not use this
// method with a bytes.Buffer to write into a []byte slice, as that will do
// double the byte copying. For that use case, use EncodeToBytes instead.
func EncodeToStream(w io.Writer, v Value) error {
	enc := encoderPool.Get().(*Encoder)
	defer encoderPool.Put(enc)

	enc.outWriter = w
	enc.EncodeValue(v)

	// Retrieve any errors, zero out the sink and return
	err := enc.err
	enc.reset()

	return err
}

// EncodeToBytes serializes the value into a freshly allocated byte slice of
// exactly the encoded size. Don't use this method if you want to then write
// the buffer into a stream via some writer, as that would double the memory
// use for the temporary buffer. For that use case, use EncodeToStream instead.
func EncodeToBytes(v Value) []byte {
	return AppendToBytes(make([]byte, 0, Size(v)), v)
}

// AppendToBytes serializes the value, appending it to the end of dst and
// returning the extended slice. Useful for prefixing the encoding with some
// type marker without an extra copy.
func AppendToBytes(dst []byte, v Value) []byte {
	enc := encoderPool.Get().(*Encoder)
	defer encoderPool.Put(enc)

	enc.outBuffer = dst
	enc.EncodeValue(v)

	// Buffered encoding can never fail, take the output and zero out the sink
	out := enc.outBuffer
	enc.reset()

	return out
}

// DecodeFromBytes parses a single canonical value out of a byte blob. The blob
// must contain exactly one value, trailing data is rejected.
//
// The returned byte-strings alias the input blob.
func DecodeFromBytes(blob []byte) (Value, error) {
	dec := decoderPool.Get().(*Decoder)
	defer decoderPool.Put(dec)

	dec.inBuffer = blob
	v := dec.DecodeValue()

	err := dec.err
	if err == nil && len(dec.inBuffer) > 0 {
		err = fmt.Errorf("%w: %d bytes after value", ErrTrailingBytes, len(dec.inBuffer))
	}
	dec.reset()

	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// Size retrieves the size of the value's canonical encoding.
func Size(v Value) uint64 {
	return sizeValue(v)
}
