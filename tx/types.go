// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"encoding/binary"
	"fmt"
)

// Type is the envelope variant of a transaction. The numeric value of a typed
// transaction is the marker byte prefixed to its wire encoding.
type Type byte

const (
	TypeLegacy     Type = 0x00 // Priced by a gas price coefficient, no envelope marker
	TypeDynamicFee Type = 0x51 // Priced by max fee and max priority fee, 0x51 marker
)

// TypeMapping maps transaction type names to type values. This is used by the
// YAML documents and the command line tools to convert names to values.
var TypeMapping = map[string]Type{
	"legacy":      TypeLegacy,
	"dynamic":     TypeDynamicFee,
	"dynamic-fee": TypeDynamicFee,
}

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeLegacy:
		return "legacy"
	case TypeDynamicFee:
		return "dynamic-fee"
	default:
		return fmt.Sprintf("type(%#x)", byte(t))
	}
}

// Features is the bitset carried as the first element of the reserved trailer.
type Features uint32

// DelegationFeature marks a transaction whose gas is paid by a second party,
// signing after the sender.
const DelegationFeature Features = 1

// IsDelegated reports whether the delegation bit is set.
func (f Features) IsDelegated() bool {
	return f&DelegationFeature == DelegationFeature
}

// SetDelegated sets or clears the delegation bit.
func (f *Features) SetDelegated(delegated bool) {
	if delegated {
		*f |= DelegationFeature
	} else {
		*f &^= DelegationFeature
	}
}

// BlockRef references the block a transaction was built against: the first 4
// bytes are the big-endian block number, the rest a prefix of its ID.
type BlockRef [8]byte

// NewBlockRef creates a block reference carrying only a block number.
func NewBlockRef(number uint32) (ref BlockRef) {
	binary.BigEndian.PutUint32(ref[:], number)
	return ref
}

// Number returns the block number the reference points to.
func (r BlockRef) Number() uint32 {
	return binary.BigEndian.Uint32(r[:])
}
