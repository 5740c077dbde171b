// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"
)

// hasherPool is a pool of blake2b-256 hashers to avoid reinitializing the
// internal state on every hash.
var hasherPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err) // only fails for oversized keys
		}
		return h
	},
}

// blake2b256 hashes the concatenation of the given blobs.
func blake2b256(blobs ...[]byte) (h common.Hash) {
	hasher := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(hasher)

	hasher.Reset()
	for _, blob := range blobs {
		hasher.Write(blob)
	}
	hasher.Sum(h[:0])
	return h
}

// SigningHash returns the hash the sender signs: the blake2b-256 of the
// encoding without signature.
func (t *Transaction) SigningHash() (common.Hash, error) {
	raw, err := Encode(t, true)
	if err != nil {
		return common.Hash{}, err
	}
	return blake2b256(raw), nil
}

// DelegatorSigningHash returns the hash the gas payer signs, binding the
// signing hash to the sender who will originate the transaction.
func (t *Transaction) DelegatorSigningHash(origin common.Address) (common.Hash, error) {
	sighash, err := t.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}
	return blake2b256(sighash[:], origin[:]), nil
}

// ID returns the unique identifier of a signed transaction, derived from its
// signing hash and sender.
func (t *Transaction) ID() (common.Hash, error) {
	origin, err := t.Origin()
	if err != nil {
		return common.Hash{}, err
	}
	sighash, err := t.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}
	return blake2b256(sighash[:], origin[:]), nil
}
