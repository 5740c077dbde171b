// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"fmt"
	"unsafe"

	"github.com/holiman/uint256"
)

// commonUnsignedIntegers is a generic type whose purpose is to permit native
// unsigned integers (and types derived from them, such as feature bitsets) to
// be passed to the numeric helpers without going through uint256.
type commonUnsignedIntegers interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// EncodeUint serializes a native unsigned integer with a numeric scalar.
func EncodeUint[T commonUnsignedIntegers](s Scalar, n T) ([]byte, error) {
	return s.EncodeUint256(uint256.NewInt(uint64(n)))
}

// DecodeUint parses a numeric scalar into a native unsigned integer, failing
// if the value does not fit into T even though it fits the scalar.
func DecodeUint[T commonUnsignedIntegers](s Scalar, blob []byte) (T, error) {
	n, err := s.DecodeUint256(blob)
	if err != nil {
		return 0, err
	}
	var zero T
	if size := n.ByteLen(); size > int(unsafe.Sizeof(zero)) {
		return 0, fmt.Errorf("%w: %d bytes into %T", ErrNumericOverflow, size, zero)
	}
	return T(n.Uint64()), nil
}
