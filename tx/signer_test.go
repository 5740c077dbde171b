// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

// newTestTransaction creates a simple legacy transfer, optionally delegated.
func newTestTransaction(delegated bool) *Transaction {
	coef := uint8(128)
	to := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

	tx := &Transaction{
		ChainTag:     0x27,
		BlockRef:     NewBlockRef(1000),
		Expiration:   720,
		Clauses:      []Clause{{To: &to, Value: uint256.NewInt(1), Data: []byte{}}},
		GasPriceCoef: &coef,
		Gas:          21000,
		Nonce:        1,
	}
	tx.Reserved.Features.SetDelegated(delegated)
	return tx
}

// Tests that the two party signing flow produces the same transaction as the
// single call one.
func TestSignTwoParty(t *testing.T) {
	tx := newTestTransaction(true)

	half, err := tx.SignAsSender(senderKey)
	require.NoError(t, err)
	require.Len(t, half.Signature, signatureLength)
	require.False(t, half.IsSigned())
	require.Nil(t, tx.Signature, "original transaction modified")

	full, err := half.SignAsGasPayer(senderAddr, gasPayerKey)
	require.NoError(t, err)
	require.True(t, full.IsSigned())

	both, err := tx.SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	require.NoError(t, err)
	require.Equal(t, both.Signature, full.Signature)

	origin, err := full.Origin()
	require.NoError(t, err)
	require.Equal(t, senderAddr, origin)

	payer, err := full.GasPayer()
	require.NoError(t, err)
	require.Equal(t, gasPayerAddr, payer)

	// Re-signing as gas payer replaces the previous gas payer signature
	again, err := full.SignAsGasPayer(senderAddr, gasPayerKey)
	require.NoError(t, err)
	require.Equal(t, full.Signature, again.Signature)
}

// Tests that the gas payer cannot sign before the sender, as its signature
// would be mistaken for the sender's one.
func TestSignGasPayerFirst(t *testing.T) {
	tx := newTestTransaction(true)

	_, err := tx.SignAsGasPayer(senderAddr, gasPayerKey)
	require.ErrorIs(t, err, ErrUnsigned)

	// A truncated sender signature is no better
	partial := tx.Copy()
	partial.Signature = make([]byte, signatureLength-1)

	_, err = partial.SignAsGasPayer(senderAddr, gasPayerKey)
	require.ErrorIs(t, err, ErrUnsigned)

	// Once the sender signed, the gas payer's signature completes the origin
	half, err := tx.SignAsSender(senderKey)
	require.NoError(t, err)

	full, err := half.SignAsGasPayer(senderAddr, gasPayerKey)
	require.NoError(t, err)
	require.Equal(t, half.Signature, full.Signature[:signatureLength])

	origin, err := full.Origin()
	require.NoError(t, err)
	require.Equal(t, senderAddr, origin)
}

// Tests that signing methods refuse transactions of the wrong delegation mode.
func TestSignDelegationMismatch(t *testing.T) {
	plain, delegated := newTestTransaction(false), newTestTransaction(true)

	_, err := delegated.Sign(senderKey)
	require.ErrorIs(t, err, ErrDelegated)

	_, err = plain.SignAsSender(senderKey)
	require.ErrorIs(t, err, ErrNotDelegated)

	_, err = plain.SignAsGasPayer(senderAddr, gasPayerKey)
	require.ErrorIs(t, err, ErrNotDelegated)

	_, err = plain.SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	require.ErrorIs(t, err, ErrNotDelegated)

	signed, err := plain.Sign(senderKey)
	require.NoError(t, err)

	_, err = signed.GasPayer()
	require.ErrorIs(t, err, ErrNotDelegated)
}

// Tests signer recovery on unsigned and tampered transactions.
func TestRecoverFailures(t *testing.T) {
	tx := newTestTransaction(false)

	_, err := tx.Origin()
	require.ErrorIs(t, err, ErrUnsigned)

	_, err = tx.ID()
	require.ErrorIs(t, err, ErrUnsigned)

	signed, err := tx.Sign(senderKey)
	require.NoError(t, err)

	// An invalid recovery id cannot yield a public key
	v := signed.Signature[signatureLength-1]
	signed.Signature[signatureLength-1] = 0xff
	_, err = signed.Origin()
	require.ErrorIs(t, err, ErrInvalidSignature)

	// A modified body recovers some other account
	signed.Signature[signatureLength-1] = v
	signed.Nonce++
	if origin, err := signed.Origin(); err == nil {
		require.NotEqual(t, senderAddr, origin)
	}
}

// Tests that the ID binds the signing hash to the sender.
func TestIDDependsOnOrigin(t *testing.T) {
	tx := newTestTransaction(false)

	bySender, err := tx.Sign(senderKey)
	require.NoError(t, err)
	byPayer, err := tx.Sign(gasPayerKey)
	require.NoError(t, err)

	id1, err := bySender.ID()
	require.NoError(t, err)
	id2, err := byPayer.ID()
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	hash, err := tx.DelegatorSigningHash(senderAddr)
	require.NoError(t, err)
	require.Equal(t, hash, id1)
}
