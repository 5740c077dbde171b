// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"errors"
	"fmt"
)

// ErrCanonSize is returned when a length header is not the minimal encoding
// of its length: a long form header for 55 bytes or less, or a length prefix
// with leading zero bytes.
var ErrCanonSize = errors.New("rlp: non-canonical size information")

// ErrCanonSingleByte is returned when a single byte below 0x80 is wrapped into
// a string header instead of standing for itself.
var ErrCanonSingleByte = errors.New("rlp: non-canonical single byte string")

// ErrValueTooLarge is returned when a header announces more payload than the
// input contains.
var ErrValueTooLarge = errors.New("rlp: value size exceeds available input length")

// ErrElemTooLarge is returned when a list element overruns the payload of its
// containing list.
var ErrElemTooLarge = errors.New("rlp: element is larger than containing list")

// ErrTooDeep is returned when lists nest deeper than MaxDepth.
var ErrTooDeep = errors.New("rlp: lists nested too deep")

// ErrTrailingBytes is returned when the input has data after the first value.
var ErrTrailingBytes = errors.New("rlp: input contains more than one value")

// ErrExpectedString is returned when a byte-string was expected by a profile
// but a list was found.
var ErrExpectedString = errors.New("rlp: expected string")

// ErrExpectedList is returned when a list was expected by a profile but a
// byte-string was found (or a non-slice value was provided for packing).
var ErrExpectedList = errors.New("rlp: expected list")

// ErrFieldCount is returned when a structured list has a different number of
// items than its profile has fields.
var ErrFieldCount = errors.New("rlp: field count mismatch")

// ErrNumericOverflow is returned when an integer does not fit into the byte
// width of its numeric scalar.
var ErrNumericOverflow = errors.New("rlp: numeric overflow")

// ErrNegativeNumber is returned when a negative integer is provided to a
// numeric scalar. The format has no sign representation.
var ErrNegativeNumber = errors.New("rlp: negative number")

// ErrLeadingZero is returned when a compact encoding carries a leading zero
// byte, meaning a shorter representation existed.
var ErrLeadingZero = errors.New("rlp: leading zero byte")

// ErrBlobSize is returned when a blob does not match the length its scalar
// requires.
var ErrBlobSize = errors.New("rlp: invalid blob size")

// ErrOddHexLength is returned when hex text for a blob has an odd number of
// digits.
var ErrOddHexLength = errors.New("rlp: odd length hex string")

// ErrInvalidValueType is returned when a scalar is handed a Go value it does
// not know how to interpret.
var ErrInvalidValueType = errors.New("rlp: invalid value type")

// FieldError is a packing or unpacking failure annotated with the profile path
// of the offending field, e.g. "tx.clauses.#1.to".
type FieldError struct {
	Path string // Dotted profile path of the failing field
	Err  error  // Underlying failure, usually one of the sentinel errors
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// fieldError wraps an error with a field path, unless it already carries one
// from a deeper level.
func fieldError(path string, err error) error {
	var ferr *FieldError
	if errors.As(err, &ferr) {
		return err
	}
	return &FieldError{Path: path, Err: err}
}
