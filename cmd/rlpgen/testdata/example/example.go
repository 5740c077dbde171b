// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package example holds structs rlpgen generates profiles for in tests.
package example

import "github.com/holiman/uint256"

type Withdrawal struct {
	Index   uint64       `rlp:"numeric,8"`
	Address []byte       `rlp:"optional,20"`
	Amount  *uint256.Int `rlp:"numeric,32"`
}

type Payload struct {
	Number      uint32   `rlp:"numeric,4"`
	Extra       []byte   `rlp:"hex"`
	Withdrawals []Withdrawal
	Note        string `rlp:"-"`
}

// Untagged structs are skipped unless named explicitly.
type Untagged struct {
	Value uint64
}
