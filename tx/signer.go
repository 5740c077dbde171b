// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// signatureLength is the size of a secp256k1 [R || S || V] signature.
const signatureLength = crypto.SignatureLength

// Sign returns a copy of the transaction signed by its sender. Delegated
// transactions need the gas payer to sign too, see SignAsSenderAndGasPayer.
func (t *Transaction) Sign(key *ecdsa.PrivateKey) (*Transaction, error) {
	if t.IsDelegated() {
		return nil, ErrDelegated
	}
	sig, err := t.senderSignature(key)
	if err != nil {
		return nil, err
	}
	cpy := t.Copy()
	cpy.Signature = sig
	return cpy, nil
}

// SignAsSender returns a copy of a delegated transaction carrying only the
// sender's signature, to be completed by the gas payer with SignAsGasPayer.
func (t *Transaction) SignAsSender(key *ecdsa.PrivateKey) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, ErrNotDelegated
	}
	sig, err := t.senderSignature(key)
	if err != nil {
		return nil, err
	}
	cpy := t.Copy()
	cpy.Signature = sig
	return cpy, nil
}

// SignAsGasPayer returns a copy of a sender signed, delegated transaction with
// the gas payer's signature over the given sender appended. Any previous gas
// payer signature is replaced.
func (t *Transaction) SignAsGasPayer(sender common.Address, key *ecdsa.PrivateKey) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, ErrNotDelegated
	}
	if len(t.Signature) < signatureLength {
		return nil, fmt.Errorf("%w: sender signature missing", ErrUnsigned)
	}
	hash, err := t.DelegatorSigningHash(sender)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash[:], key)
	if err != nil {
		return nil, err
	}
	cpy := t.Copy()
	cpy.Signature = append(common.CopyBytes(t.Signature[:signatureLength]), sig...)
	return cpy, nil
}

// SignAsSenderAndGasPayer returns a copy of a delegated transaction signed by
// both parties in one go.
func (t *Transaction) SignAsSenderAndGasPayer(sender *ecdsa.PrivateKey, gasPayer *ecdsa.PrivateKey) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, ErrNotDelegated
	}
	senderSig, err := t.senderSignature(sender)
	if err != nil {
		return nil, err
	}
	hash, err := t.DelegatorSigningHash(crypto.PubkeyToAddress(sender.PublicKey))
	if err != nil {
		return nil, err
	}
	payerSig, err := crypto.Sign(hash[:], gasPayer)
	if err != nil {
		return nil, err
	}
	cpy := t.Copy()
	cpy.Signature = append(senderSig, payerSig...)
	return cpy, nil
}

// Origin recovers the sender of a signed transaction.
func (t *Transaction) Origin() (common.Address, error) {
	if !t.IsSigned() {
		return common.Address{}, ErrUnsigned
	}
	hash, err := t.SigningHash()
	if err != nil {
		return common.Address{}, err
	}
	return recoverAddress(hash, t.Signature[:signatureLength])
}

// GasPayer recovers the party paying for a delegated transaction's gas.
func (t *Transaction) GasPayer() (common.Address, error) {
	if !t.IsDelegated() {
		return common.Address{}, ErrNotDelegated
	}
	origin, err := t.Origin()
	if err != nil {
		return common.Address{}, err
	}
	hash, err := t.DelegatorSigningHash(origin)
	if err != nil {
		return common.Address{}, err
	}
	return recoverAddress(hash, t.Signature[signatureLength:])
}

func (t *Transaction) senderSignature(key *ecdsa.PrivateKey) ([]byte, error) {
	hash, err := t.SigningHash()
	if err != nil {
		return nil, err
	}
	return crypto.Sign(hash[:], key)
}

func recoverAddress(hash common.Hash, sig []byte) (common.Address, error) {
	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
