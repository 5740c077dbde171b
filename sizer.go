// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

// headerSize returns the number of bytes needed by a string or list header
// announcing a payload of the given size.
func headerSize(size uint64) uint64 {
	if size <= 55 {
		return 1
	}
	return 1 + uint64(intSize(size))
}

// intSize returns the minimal number of big-endian bytes needed to represent n.
func intSize(n uint64) int {
	for i := 1; ; i++ {
		if n >>= 8; n == 0 {
			return i
		}
	}
}

// sizeString returns the encoded size of a byte-string.
func sizeString(blob []byte) uint64 {
	if len(blob) == 1 && blob[0] < 0x80 {
		return 1
	}
	return headerSize(uint64(len(blob))) + uint64(len(blob))
}

// sizeContent returns the size of the payload of a value, excluding its header.
// For byte-strings that is the blob length, for lists it is the sum of all the
// encoded items.
func sizeContent(v Value) uint64 {
	if v.kind == KindString {
		return uint64(len(v.str))
	}
	var size uint64
	for _, item := range v.items {
		size += sizeValue(item)
	}
	return size
}

// sizeValue returns the full encoded size of a value, header included.
func sizeValue(v Value) uint64 {
	if v.kind == KindString {
		return sizeString(v.str)
	}
	content := sizeContent(v)
	return headerSize(content) + content
}
