// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import "errors"

// ErrInvalidEncoding is returned when a raw transaction matches none of the
// profiles of its variant.
var ErrInvalidEncoding = errors.New("tx: invalid encoding")

// ErrMalformedReserved is returned when the reserved trailer is not trimmed of
// trailing empty elements, or its features element is malformed.
var ErrMalformedReserved = errors.New("tx: malformed reserved field")

// ErrInvalidTransactionBody is returned when a transaction mixes legacy and
// dynamic fee pricing, or lacks the pricing of either.
var ErrInvalidTransactionBody = errors.New("tx: invalid transaction body")

// ErrIntrinsicGasOverflow is returned when the intrinsic gas of a set of
// clauses does not fit into 64 bits.
var ErrIntrinsicGasOverflow = errors.New("tx: intrinsic gas overflow")

// ErrDelegated is returned when a single party tries to sign a transaction that
// requires a gas payer signature too.
var ErrDelegated = errors.New("tx: transaction is delegated")

// ErrNotDelegated is returned when a gas payer operation is attempted on a
// transaction without the delegation feature.
var ErrNotDelegated = errors.New("tx: transaction is not delegated")

// ErrUnsigned is returned when a signer is recovered from a transaction that
// does not carry a complete signature, or when the gas payer signs before the
// sender.
var ErrUnsigned = errors.New("tx: transaction is not signed")

// ErrInvalidSignature is returned when no public key can be recovered from a
// signature.
var ErrInvalidSignature = errors.New("tx: invalid signature")
