// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// scalarKind enumerates the closed set of primitive wire representations.
type scalarKind int

const (
	scalarNumeric           scalarKind = iota // Trimmed big-endian unsigned integer
	scalarCompactFixedBlob                    // Fixed size blob with leading zeroes trimmed
	scalarFixedBlob                           // Fixed size blob, verbatim
	scalarHexBlob                             // Arbitrary size blob
	scalarOptionalFixedBlob                   // Fixed size blob or nothing
	scalarBuffer                              // Raw passthrough bytes
)

// Scalar is a stateless codec for a single primitive wire representation. The
// set of scalars is closed; construct them via the helper functions below.
type Scalar struct {
	kind scalarKind
	size int // Byte width (numeric) or blob length, 0 if unbounded
}

// Numeric creates a scalar for a non-negative integer of at most the given
// number of bytes. On the wire the integer is big-endian with all leading zero
// bytes trimmed, zero being the empty string.
func Numeric(bytes int) Scalar {
	if bytes < 1 || bytes > 32 {
		panic(fmt.Sprintf("rlp: numeric width %d out of range [1, 32]", bytes))
	}
	return Scalar{kind: scalarNumeric, size: bytes}
}

// CompactFixedBlob creates a scalar for a blob of at most the given length
// whose leading zero bytes are trimmed on the wire and padded back on decode.
func CompactFixedBlob(bytes int) Scalar {
	if bytes < 1 {
		panic(fmt.Sprintf("rlp: compact blob length %d must be positive", bytes))
	}
	return Scalar{kind: scalarCompactFixedBlob, size: bytes}
}

// FixedBlob creates a scalar for a blob of exactly the given length.
func FixedBlob(bytes int) Scalar {
	if bytes < 1 {
		panic(fmt.Sprintf("rlp: fixed blob length %d must be positive", bytes))
	}
	return Scalar{kind: scalarFixedBlob, size: bytes}
}

// HexBlob creates a scalar for a blob of arbitrary length.
func HexBlob() Scalar {
	return Scalar{kind: scalarHexBlob}
}

// OptionalFixedBlob creates a scalar for a blob that is either exactly the
// given length, or absent and encoded as the empty string.
func OptionalFixedBlob(bytes int) Scalar {
	if bytes < 1 {
		panic(fmt.Sprintf("rlp: optional blob length %d must be positive", bytes))
	}
	return Scalar{kind: scalarOptionalFixedBlob, size: bytes}
}

// Buffer creates a scalar passing raw bytes through uninterpreted.
func Buffer() Scalar {
	return Scalar{kind: scalarBuffer}
}

// String implements fmt.Stringer.
func (s Scalar) String() string {
	switch s.kind {
	case scalarNumeric:
		return fmt.Sprintf("numeric(%d)", s.size)
	case scalarCompactFixedBlob:
		return fmt.Sprintf("compact(%d)", s.size)
	case scalarFixedBlob:
		return fmt.Sprintf("fixed(%d)", s.size)
	case scalarHexBlob:
		return "hex"
	case scalarOptionalFixedBlob:
		return fmt.Sprintf("optional(%d)", s.size)
	case scalarBuffer:
		return "buffer"
	default:
		panic(fmt.Sprintf("rlp: unknown scalar kind %d", s.kind))
	}
}

// Size returns the byte width or blob length of the scalar, 0 for unbounded
// ones.
func (s Scalar) Size() int {
	return s.size
}

// Encode converts a logical value into the byte-string carried on the wire.
//
// Numeric scalars accept Go integers, *uint256.Int, *big.Int and either 0x
// prefixed hex or decimal text. Blob scalars accept []byte, [8]byte, [20]byte,
// [32]byte and 0x prefixed hex text; optional ones also nil. Buffers only take
// []byte. Byte slices are not copied.
func (s Scalar) Encode(v any) ([]byte, error) {
	switch s.kind {
	case scalarNumeric:
		n, err := toUint256(v)
		if err != nil {
			return nil, err
		}
		return s.EncodeUint256(n)

	case scalarCompactFixedBlob, scalarFixedBlob, scalarHexBlob, scalarOptionalFixedBlob:
		if v == nil && s.kind == scalarOptionalFixedBlob {
			return []byte{}, nil
		}
		blob, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		return s.EncodeBytes(blob)

	case scalarBuffer:
		blob, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: %T for %v", ErrInvalidValueType, v, s)
		}
		return blob, nil

	default:
		panic(fmt.Sprintf("rlp: unknown scalar kind %d", s.kind))
	}
}

// Decode converts a wire byte-string into its logical value. Numeric scalars
// produce *uint256.Int, all others []byte. Absent optional blobs produce nil.
// The result never aliases the input.
func (s Scalar) Decode(blob []byte) (any, error) {
	switch s.kind {
	case scalarNumeric:
		return s.DecodeUint256(blob)

	case scalarOptionalFixedBlob:
		out, err := s.DecodeBytes(blob)
		if err != nil || out == nil {
			return nil, err
		}
		return out, nil

	case scalarCompactFixedBlob, scalarFixedBlob, scalarHexBlob, scalarBuffer:
		return s.DecodeBytes(blob)

	default:
		panic(fmt.Sprintf("rlp: unknown scalar kind %d", s.kind))
	}
}

// EncodeUint256 serializes an integer with a numeric scalar.
func (s Scalar) EncodeUint256(n *uint256.Int) ([]byte, error) {
	if s.kind != scalarNumeric {
		return nil, fmt.Errorf("%w: integer for %v", ErrInvalidValueType, s)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: nil integer", ErrInvalidValueType)
	}
	if size := n.ByteLen(); size > s.size {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrNumericOverflow, size, s.size)
	}
	return n.Bytes(), nil
}

// DecodeUint256 parses an integer with a numeric scalar.
func (s Scalar) DecodeUint256(blob []byte) (*uint256.Int, error) {
	if s.kind != scalarNumeric {
		return nil, fmt.Errorf("%w: integer for %v", ErrInvalidValueType, s)
	}
	if len(blob) > s.size {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrNumericOverflow, len(blob), s.size)
	}
	if len(blob) > 0 && blob[0] == 0 {
		return nil, fmt.Errorf("%w: numeric 0x%x", ErrLeadingZero, blob)
	}
	return new(uint256.Int).SetBytes(blob), nil
}

// EncodeBytes serializes a blob with any of the blob scalars.
func (s Scalar) EncodeBytes(blob []byte) ([]byte, error) {
	switch s.kind {
	case scalarCompactFixedBlob:
		if len(blob) > s.size {
			return nil, fmt.Errorf("%w: %d bytes, max %d", ErrBlobSize, len(blob), s.size)
		}
		for len(blob) > 0 && blob[0] == 0 {
			blob = blob[1:]
		}
		return blob, nil

	case scalarFixedBlob:
		if len(blob) != s.size {
			return nil, fmt.Errorf("%w: %d bytes, want %d", ErrBlobSize, len(blob), s.size)
		}
		return blob, nil

	case scalarOptionalFixedBlob:
		if len(blob) == 0 {
			return []byte{}, nil
		}
		if len(blob) != s.size {
			return nil, fmt.Errorf("%w: %d bytes, want %d or none", ErrBlobSize, len(blob), s.size)
		}
		return blob, nil

	case scalarHexBlob, scalarBuffer:
		return blob, nil

	default:
		return nil, fmt.Errorf("%w: blob for %v", ErrInvalidValueType, s)
	}
}

// DecodeBytes parses a blob with any of the blob scalars. Absent optional
// blobs are returned as nil, every other result is a non-nil copy.
func (s Scalar) DecodeBytes(blob []byte) ([]byte, error) {
	switch s.kind {
	case scalarCompactFixedBlob:
		if len(blob) > s.size {
			return nil, fmt.Errorf("%w: %d bytes, max %d", ErrBlobSize, len(blob), s.size)
		}
		if len(blob) > 0 && blob[0] == 0 {
			return nil, fmt.Errorf("%w: compact blob 0x%x", ErrLeadingZero, blob)
		}
		out := make([]byte, s.size)
		copy(out[s.size-len(blob):], blob)
		return out, nil

	case scalarFixedBlob:
		if len(blob) != s.size {
			return nil, fmt.Errorf("%w: %d bytes, want %d", ErrBlobSize, len(blob), s.size)
		}
		return append([]byte{}, blob...), nil

	case scalarOptionalFixedBlob:
		if len(blob) == 0 {
			return nil, nil
		}
		if len(blob) != s.size {
			return nil, fmt.Errorf("%w: %d bytes, want %d or none", ErrBlobSize, len(blob), s.size)
		}
		return append([]byte{}, blob...), nil

	case scalarHexBlob, scalarBuffer:
		return append([]byte{}, blob...), nil

	default:
		return nil, fmt.Errorf("%w: blob for %v", ErrInvalidValueType, s)
	}
}

// toUint256 interprets the supported Go representations of a non-negative
// integer.
func toUint256(v any) (*uint256.Int, error) {
	switch n := v.(type) {
	case uint8:
		return uint256.NewInt(uint64(n)), nil
	case uint16:
		return uint256.NewInt(uint64(n)), nil
	case uint32:
		return uint256.NewInt(uint64(n)), nil
	case uint64:
		return uint256.NewInt(n), nil
	case uint:
		return uint256.NewInt(uint64(n)), nil
	case int8:
		return fromSigned(int64(n))
	case int16:
		return fromSigned(int64(n))
	case int32:
		return fromSigned(int64(n))
	case int64:
		return fromSigned(n)
	case int:
		return fromSigned(int64(n))
	case *uint256.Int:
		if n == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrInvalidValueType)
		}
		return n, nil
	case uint256.Int:
		return &n, nil
	case *big.Int:
		return fromBig(n)
	case string:
		return fromText(n)
	default:
		return nil, fmt.Errorf("%w: %T for numeric", ErrInvalidValueType, v)
	}
}

func fromSigned(n int64) (*uint256.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeNumber, n)
	}
	return uint256.NewInt(uint64(n)), nil
}

func fromBig(n *big.Int) (*uint256.Int, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil integer", ErrInvalidValueType)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeNumber, n)
	}
	u, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("%w: %d bits", ErrNumericOverflow, n.BitLen())
	}
	return u, nil
}

// fromText parses 0x prefixed hex or plain decimal integer text.
func fromText(s string) (*uint256.Int, error) {
	var (
		n  *big.Int
		ok bool
	)
	if digits, hex := strings.CutPrefix(strings.ToLower(s), "0x"); hex {
		if digits == "" {
			return nil, fmt.Errorf("%w: empty hex number %q", ErrInvalidValueType, s)
		}
		n, ok = new(big.Int).SetString(digits, 16)
	} else {
		n, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("%w: malformed number %q", ErrInvalidValueType, s)
	}
	return fromBig(n)
}

// toBytes interprets the supported Go representations of a blob.
func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case [8]byte:
		return b[:], nil
	case [20]byte:
		return b[:], nil
	case [32]byte:
		return b[:], nil
	case string:
		blob, err := hexutil.Decode(b)
		if errors.Is(err, hexutil.ErrOddLength) {
			return nil, fmt.Errorf("%w: %q", ErrOddHexLength, b)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValueType, err)
		}
		return blob, nil
	default:
		return nil, fmt.Errorf("%w: %T for blob", ErrInvalidValueType, v)
	}
}
