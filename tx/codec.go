// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/thorkit/rlp"
)

// Encode serializes a transaction into its wire form. The signature is left
// out if the transaction is unsigned or forSigningHash is set, the latter
// producing the payload signatures are computed over. Dynamic fee encodings
// are prefixed with the 0x51 envelope marker.
func Encode(t *Transaction, forSigningHash bool) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	obj, err := packTransaction(t)
	if err != nil {
		return nil, err
	}
	typ := t.Type()
	profile, signed := profilesOf(typ)
	if len(t.Signature) > 0 && !forSigningHash {
		profile = signed
		obj["signature"] = t.Signature
	}
	v, err := profile.Pack(obj)
	if err != nil {
		return nil, err
	}
	if typ == TypeLegacy {
		return rlp.EncodeToBytes(v), nil
	}
	blob := make([]byte, 1, 1+rlp.Size(v))
	blob[0] = byte(typ)
	return rlp.AppendToBytes(blob, v), nil
}

// Decode parses the wire form of a transaction, signed or not.
//
// The variant is picked by the envelope marker, and within a variant the
// signed layout is tried before the unsigned one by counting the top level
// items.
func Decode(raw []byte) (*Transaction, error) {
	typ, body := TypeLegacy, raw
	if len(raw) > 0 && raw[0] == byte(TypeDynamicFee) {
		typ, body = TypeDynamicFee, raw[1:]
	}
	v, err := rlp.DecodeFromBytes(body)
	if err != nil {
		return nil, err
	}
	if v.Kind() != rlp.KindList {
		return nil, fmt.Errorf("%w: %s %s body", ErrInvalidEncoding, typ, v.Kind())
	}
	unsigned, signed := profilesOf(typ)

	var profile rlp.Profile
	switch v.Len() {
	case signed.NumFields():
		profile = signed
	case unsigned.NumFields():
		profile = unsigned
	default:
		return nil, fmt.Errorf("%w: %s body with %d items", ErrInvalidEncoding, typ, v.Len())
	}
	obj, err := profile.Unpack(v)
	if err != nil {
		return nil, err
	}
	return unpackTransaction(obj.(rlp.Object), typ)
}

// packTransaction converts a transaction into the structured form of its
// profiles, without the signature.
func packTransaction(t *Transaction) (rlp.Object, error) {
	clauses := make([]any, len(t.Clauses))
	for i, clause := range t.Clauses {
		clauses[i] = packClause(clause)
	}
	reserved, err := t.Reserved.encode()
	if err != nil {
		return nil, err
	}
	obj := rlp.Object{
		"chainTag":   t.ChainTag,
		"blockRef":   t.BlockRef[:],
		"expiration": t.Expiration,
		"clauses":    clauses,
		"gas":        t.Gas,
		"dependsOn":  nil,
		"nonce":      t.Nonce,
		"reserved":   reserved,
	}
	if t.DependsOn != nil {
		obj["dependsOn"] = t.DependsOn.Bytes()
	}
	if t.Type() == TypeDynamicFee {
		obj["maxPriorityFeePerGas"] = t.MaxPriorityFeePerGas
		obj["maxFeePerGas"] = t.MaxFeePerGas
	} else {
		obj["gasPriceCoef"] = *t.GasPriceCoef
	}
	return obj, nil
}

func packClause(c Clause) rlp.Object {
	obj := rlp.Object{"to": nil, "value": c.Value, "data": c.Data}
	if c.To != nil {
		obj["to"] = c.To.Bytes()
	}
	if c.Value == nil {
		obj["value"] = new(uint256.Int)
	}
	if c.Data == nil {
		obj["data"] = []byte{}
	}
	return obj
}

// unpackTransaction converts the structured form produced by a profile into a
// transaction. The profile already validated every field, so the assertions
// below cannot fail.
func unpackTransaction(obj rlp.Object, typ Type) (*Transaction, error) {
	t := &Transaction{
		ChainTag:   byte(obj["chainTag"].(*uint256.Int).Uint64()),
		Expiration: uint32(obj["expiration"].(*uint256.Int).Uint64()),
		Gas:        obj["gas"].(*uint256.Int).Uint64(),
		Nonce:      obj["nonce"].(*uint256.Int).Uint64(),
	}
	copy(t.BlockRef[:], obj["blockRef"].([]byte))

	items := obj["clauses"].([]any)
	t.Clauses = make([]Clause, len(items))
	for i, item := range items {
		t.Clauses[i] = unpackClause(item.(rlp.Object))
	}
	if typ == TypeDynamicFee {
		t.MaxPriorityFeePerGas = obj["maxPriorityFeePerGas"].(*uint256.Int)
		t.MaxFeePerGas = obj["maxFeePerGas"].(*uint256.Int)
	} else {
		coef := uint8(obj["gasPriceCoef"].(*uint256.Int).Uint64())
		t.GasPriceCoef = &coef
	}
	if dep, ok := obj["dependsOn"].([]byte); ok {
		hash := common.BytesToHash(dep)
		t.DependsOn = &hash
	}
	elems := obj["reserved"].([]any)
	blobs := make([][]byte, len(elems))
	for i, elem := range elems {
		blobs[i] = elem.([]byte)
	}
	reserved, err := decodeReserved(blobs)
	if err != nil {
		return nil, &rlp.FieldError{Path: "tx.reserved", Err: err}
	}
	t.Reserved = reserved

	if sig, ok := obj["signature"]; ok {
		t.Signature = sig.([]byte)
		if len(t.Signature) == 0 {
			return nil, &rlp.FieldError{Path: "tx.signature", Err: fmt.Errorf("%w: empty signature", ErrInvalidEncoding)}
		}
	}
	return t, nil
}

func unpackClause(obj rlp.Object) Clause {
	c := Clause{
		Value: obj["value"].(*uint256.Int),
		Data:  obj["data"].([]byte),
	}
	if to, ok := obj["to"].([]byte); ok {
		addr := common.BytesToAddress(to)
		c.To = &addr
	}
	return c
}
