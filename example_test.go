// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp_test

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/thorkit/rlp"
)

var withdrawalProfile = rlp.Profile{
	Name: "withdrawal",
	Shape: rlp.Nested(
		rlp.Field{Name: "index", Shape: rlp.Leaf(rlp.Numeric(8))},              // Field (0) - Index   - up to  8 bytes
		rlp.Field{Name: "address", Shape: rlp.Leaf(rlp.OptionalFixedBlob(20))}, // Field (1) - Address - 20 or 0 bytes
		rlp.Field{Name: "amount", Shape: rlp.Leaf(rlp.Numeric(32))},            // Field (2) - Amount  - up to 32 bytes
	),
}

func ExampleProfile_Encode() {
	blob, err := withdrawalProfile.Encode(rlp.Object{
		"index":   123,
		"address": nil,
		"amount":  "1000000",
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("rlp: %#x\n", blob)
	// Output:
	// rlp: 0xc67b80830f4240
}

func ExampleProfile_Decode() {
	obj, err := withdrawalProfile.Decode([]byte{0xc6, 0x7b, 0x80, 0x83, 0x0f, 0x42, 0x40})
	if err != nil {
		panic(err)
	}
	withdrawal := obj.(rlp.Object)
	fmt.Println("index:", withdrawal["index"].(*uint256.Int).Dec())
	fmt.Println("address:", withdrawal["address"])
	fmt.Println("amount:", withdrawal["amount"].(*uint256.Int).Dec())
	// Output:
	// index: 123
	// address: <nil>
	// amount: 1000000
}

func ExampleProfile_Decode_failure() {
	_, err := withdrawalProfile.Decode([]byte{0xc3, 0x7b, 0x01, 0x80})
	fmt.Println(err)
	// Output:
	// withdrawal.address: rlp: invalid blob size: 1 bytes, want 20 or none
}

func ExampleDecodeFromBytes() {
	v, err := rlp.DecodeFromBytes([]byte{0xc6, 0x80, 0xc2, 0x7f, 0xc0, 0x81, 0x80})
	if err != nil {
		panic(err)
	}
	fmt.Print(v.Format())
	// Output:
	// [
	//   0x
	//   [
	//     0x7f
	//     [
	//     ]
	//   ]
	//   0x80
	// ]
}
