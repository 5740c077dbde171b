// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import "github.com/thorkit/rlp"

// featuresScalar is the codec of the first reserved trailer element.
var featuresScalar = rlp.Numeric(4)

// clauseShape is the wire layout of a single clause.
var clauseShape = rlp.Nested(
	rlp.Field{Name: "to", Shape: rlp.Leaf(rlp.OptionalFixedBlob(20))}, // Field (0) - To    - 20 bytes or contract creation
	rlp.Field{Name: "value", Shape: rlp.Leaf(rlp.Numeric(32))},        // Field (1) - Value - up to 32 bytes
	rlp.Field{Name: "data", Shape: rlp.Leaf(rlp.HexBlob())},           // Field (2) - Data  - arbitrary
)

var signatureField = rlp.Field{Name: "signature", Shape: rlp.Leaf(rlp.Buffer())}

// LegacyUnsigned is the wire layout of a legacy transaction body.
var LegacyUnsigned = rlp.Profile{
	Name: "tx",
	Shape: rlp.Nested(
		rlp.Field{Name: "chainTag", Shape: rlp.Leaf(rlp.Numeric(1))},
		rlp.Field{Name: "blockRef", Shape: rlp.Leaf(rlp.CompactFixedBlob(8))},
		rlp.Field{Name: "expiration", Shape: rlp.Leaf(rlp.Numeric(4))},
		rlp.Field{Name: "clauses", Shape: rlp.ListOf(clauseShape)},
		rlp.Field{Name: "gasPriceCoef", Shape: rlp.Leaf(rlp.Numeric(1))},
		rlp.Field{Name: "gas", Shape: rlp.Leaf(rlp.Numeric(8))},
		rlp.Field{Name: "dependsOn", Shape: rlp.Leaf(rlp.OptionalFixedBlob(32))},
		rlp.Field{Name: "nonce", Shape: rlp.Leaf(rlp.Numeric(8))},
		rlp.Field{Name: "reserved", Shape: rlp.ListOf(rlp.Leaf(rlp.Buffer()))},
	),
}

// LegacySigned is the wire layout of a signed legacy transaction.
var LegacySigned = LegacyUnsigned.Extend("tx", signatureField)

// DynamicFeeUnsigned is the wire layout of a dynamic fee transaction body,
// without the 0x51 envelope marker.
var DynamicFeeUnsigned = rlp.Profile{
	Name: "tx",
	Shape: rlp.Nested(
		rlp.Field{Name: "chainTag", Shape: rlp.Leaf(rlp.Numeric(1))},
		rlp.Field{Name: "blockRef", Shape: rlp.Leaf(rlp.CompactFixedBlob(8))},
		rlp.Field{Name: "expiration", Shape: rlp.Leaf(rlp.Numeric(4))},
		rlp.Field{Name: "clauses", Shape: rlp.ListOf(clauseShape)},
		rlp.Field{Name: "maxPriorityFeePerGas", Shape: rlp.Leaf(rlp.Numeric(32))},
		rlp.Field{Name: "maxFeePerGas", Shape: rlp.Leaf(rlp.Numeric(32))},
		rlp.Field{Name: "gas", Shape: rlp.Leaf(rlp.Numeric(8))},
		rlp.Field{Name: "dependsOn", Shape: rlp.Leaf(rlp.OptionalFixedBlob(32))},
		rlp.Field{Name: "nonce", Shape: rlp.Leaf(rlp.Numeric(8))},
		rlp.Field{Name: "reserved", Shape: rlp.ListOf(rlp.Leaf(rlp.Buffer()))},
	),
}

// DynamicFeeSigned is the wire layout of a signed dynamic fee transaction,
// without the 0x51 envelope marker.
var DynamicFeeSigned = DynamicFeeUnsigned.Extend("tx", signatureField)

// profilesOf returns the unsigned and signed layouts of a transaction type.
func profilesOf(typ Type) (unsigned rlp.Profile, signed rlp.Profile) {
	if typ == TypeDynamicFee {
		return DynamicFeeUnsigned, DynamicFeeSigned
	}
	return LegacyUnsigned, LegacySigned
}
