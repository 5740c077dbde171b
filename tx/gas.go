// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"github.com/ethereum/go-ethereum/common/math"
)

// Gas costs charged before any clause executes.
const (
	TxGas                     uint64 = 5000  // Per transaction
	ClauseGas                 uint64 = 16000 // Per clause calling or transferring to an account
	ClauseGasContractCreation uint64 = 48000 // Per clause deploying a contract
	TxDataZeroGas             uint64 = 4     // Per zero byte of clause data
	TxDataNonZeroGas          uint64 = 68    // Per non-zero byte of clause data
)

// IntrinsicGas computes the gas a transaction with the given clauses consumes
// up front. A transaction without clauses is charged as if it had a single
// empty call.
func IntrinsicGas(clauses ...Clause) (uint64, error) {
	if len(clauses) == 0 {
		return TxGas + ClauseGas, nil
	}
	var (
		total    = TxGas
		overflow bool
	)
	for _, clause := range clauses {
		gas := ClauseGas
		if clause.To == nil {
			gas = ClauseGasContractCreation
		}
		data, err := dataGas(clause.Data)
		if err != nil {
			return 0, err
		}
		if gas, overflow = math.SafeAdd(gas, data); overflow {
			return 0, ErrIntrinsicGasOverflow
		}
		if total, overflow = math.SafeAdd(total, gas); overflow {
			return 0, ErrIntrinsicGasOverflow
		}
	}
	return total, nil
}

// dataGas computes the gas charged for carrying a clause's data.
func dataGas(data []byte) (uint64, error) {
	var zeroes uint64
	for _, b := range data {
		if b == 0 {
			zeroes++
		}
	}
	nonZeroes := uint64(len(data)) - zeroes

	zeroGas, overflow := math.SafeMul(zeroes, TxDataZeroGas)
	if overflow {
		return 0, ErrIntrinsicGasOverflow
	}
	nonZeroGas, overflow := math.SafeMul(nonZeroes, TxDataNonZeroGas)
	if overflow {
		return 0, ErrIntrinsicGasOverflow
	}
	gas, overflow := math.SafeAdd(zeroGas, nonZeroGas)
	if overflow {
		return 0, ErrIntrinsicGasOverflow
	}
	return gas, nil
}
