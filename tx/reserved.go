// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"fmt"

	"github.com/thorkit/rlp"
)

// Reserved is the forward compatible trailer of a transaction: a feature
// bitset followed by opaque elements not understood by this version.
type Reserved struct {
	Features Features
	Unused   [][]byte
}

// encode converts the trailer into its wire elements, with all trailing empty
// elements trimmed. A zero trailer is the empty list.
func (r Reserved) encode() ([][]byte, error) {
	features, err := rlp.EncodeUint(featuresScalar, r.Features)
	if err != nil {
		return nil, err
	}
	elems := make([][]byte, 0, 1+len(r.Unused))
	elems = append(elems, features)
	elems = append(elems, r.Unused...)

	return trimTrailingEmpty(elems), nil
}

// trimTrailingEmpty drops the empty elements from the end of a list. The input
// is not modified, the result shares its backing array.
func trimTrailingEmpty(elems [][]byte) [][]byte {
	n := len(elems)
	for n > 0 && len(elems[n-1]) == 0 {
		n--
	}
	return elems[:n]
}

// decodeReserved parses the wire elements of a trailer, rejecting those that
// would not survive a re-encode byte for byte.
func decodeReserved(elems [][]byte) (Reserved, error) {
	if len(elems) == 0 {
		return Reserved{}, nil
	}
	if len(elems[len(elems)-1]) == 0 {
		return Reserved{}, fmt.Errorf("%w: trailing empty element", ErrMalformedReserved)
	}
	features, err := rlp.DecodeUint[Features](featuresScalar, elems[0])
	if err != nil {
		return Reserved{}, fmt.Errorf("%w: features: %w", ErrMalformedReserved, err)
	}
	reserved := Reserved{Features: features}
	if len(elems) > 1 {
		reserved.Unused = elems[1:]
	}
	return reserved, nil
}
