// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Clause is a single call or transfer within a transaction. A nil recipient
// means the clause deploys a contract with Data as its init code.
type Clause struct {
	To    *common.Address
	Value *uint256.Int
	Data  []byte
}

// Transaction is the body of a thor transaction together with its optional
// signature.
//
// Pricing picks the variant: a legacy transaction sets GasPriceCoef, a dynamic
// fee one sets both MaxFeePerGas and MaxPriorityFeePerGas instead.
type Transaction struct {
	ChainTag             byte
	BlockRef             BlockRef
	Expiration           uint32
	Clauses              []Clause
	GasPriceCoef         *uint8       // Legacy pricing
	MaxFeePerGas         *uint256.Int // Dynamic fee pricing
	MaxPriorityFeePerGas *uint256.Int // Dynamic fee pricing
	Gas                  uint64
	DependsOn            *common.Hash
	Nonce                uint64
	Reserved             Reserved
	Signature            []byte // Sender signature, followed by the gas payer's if delegated
}

// Type returns the envelope variant the transaction encodes as.
func (t *Transaction) Type() Type {
	if t.MaxFeePerGas != nil && t.GasPriceCoef == nil {
		return TypeDynamicFee
	}
	return TypeLegacy
}

// Validate checks that the pricing fields describe exactly one variant.
func (t *Transaction) Validate() error {
	dynamic := t.MaxFeePerGas != nil || t.MaxPriorityFeePerGas != nil

	switch {
	case t.GasPriceCoef != nil && dynamic:
		return fmt.Errorf("%w: gas price coefficient mixed with dynamic fees", ErrInvalidTransactionBody)
	case t.GasPriceCoef != nil:
		return nil
	case t.MaxFeePerGas == nil:
		return fmt.Errorf("%w: missing max fee per gas", ErrInvalidTransactionBody)
	case t.MaxPriorityFeePerGas == nil:
		return fmt.Errorf("%w: missing max priority fee per gas", ErrInvalidTransactionBody)
	default:
		return nil
	}
}

// IsDelegated reports whether the transaction's gas is paid by a second party.
func (t *Transaction) IsDelegated() bool {
	return t.Reserved.Features.IsDelegated()
}

// IsSigned reports whether the transaction carries a complete signature: the
// sender's, plus the gas payer's if delegated.
func (t *Transaction) IsSigned() bool {
	if t.IsDelegated() {
		return len(t.Signature) == 2*signatureLength
	}
	return len(t.Signature) == signatureLength
}

// IntrinsicGas returns the gas consumed by the transaction before executing any
// of its clauses.
func (t *Transaction) IntrinsicGas() (uint64, error) {
	return IntrinsicGas(t.Clauses...)
}

// Copy creates a deep copy of the transaction.
func (t *Transaction) Copy() *Transaction {
	cpy := *t

	if t.Clauses != nil {
		cpy.Clauses = make([]Clause, len(t.Clauses))
		for i, clause := range t.Clauses {
			cpy.Clauses[i] = clause.copy()
		}
	}
	if t.GasPriceCoef != nil {
		coef := *t.GasPriceCoef
		cpy.GasPriceCoef = &coef
	}
	if t.MaxFeePerGas != nil {
		cpy.MaxFeePerGas = t.MaxFeePerGas.Clone()
	}
	if t.MaxPriorityFeePerGas != nil {
		cpy.MaxPriorityFeePerGas = t.MaxPriorityFeePerGas.Clone()
	}
	if t.DependsOn != nil {
		dep := *t.DependsOn
		cpy.DependsOn = &dep
	}
	if t.Reserved.Unused != nil {
		cpy.Reserved.Unused = make([][]byte, len(t.Reserved.Unused))
		for i, elem := range t.Reserved.Unused {
			cpy.Reserved.Unused[i] = common.CopyBytes(elem)
		}
	}
	cpy.Signature = common.CopyBytes(t.Signature)
	return &cpy
}

func (c Clause) copy() Clause {
	cpy := Clause{Data: common.CopyBytes(c.Data)}
	if c.To != nil {
		to := *c.To
		cpy.To = &to
	}
	if c.Value != nil {
		cpy.Value = c.Value.Clone()
	}
	return cpy
}

// MarshalBinary implements encoding.BinaryMarshaler, producing the full wire
// encoding including the signature.
func (t *Transaction) MarshalBinary() ([]byte, error) {
	return Encode(t, false)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Transaction) UnmarshalBinary(raw []byte) error {
	dec, err := Decode(raw)
	if err != nil {
		return err
	}
	*t = *dec
	return nil
}
